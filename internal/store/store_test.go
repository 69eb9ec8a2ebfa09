package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
	"github.com/mbousquet-onestock/exchange/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(filepath.Join("..", "..", "migrations")))
	return s
}

func TestSeedAndLoadArticles(t *testing.T) {
	s := newTestStore(t)

	count, err := s.CountArticles()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, s.SeedArticles(catalog.DefaultArticles()))

	articles, err := s.GetReturnableArticles()
	require.NoError(t, err)
	require.Len(t, articles, 4)
	assert.Equal(t, "1006255003062", articles[0].ID, "position column preserves feed order")
	assert.Equal(t, "£9.99", articles[0].DisplayPrice(), "price round-trips as exact decimal")

	// Seeding again must upsert, not duplicate.
	require.NoError(t, s.SeedArticles(catalog.DefaultArticles()))
	count, err = s.CountArticles()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNonReturnableArticlesExcluded(t *testing.T) {
	s := newTestStore(t)
	articles := catalog.DefaultArticles()
	require.NoError(t, s.SeedArticles(articles))
	require.NoError(t, s.UpsertArticle(&articles[0], 0, false))

	got, err := s.GetReturnableArticles()
	require.NoError(t, err)
	assert.Len(t, got, len(articles)-1)
}

func TestCreateRequest(t *testing.T) {
	s := newTestStore(t)

	delta := models.ExchangeDelta{Kind: models.DeltaPayByLink, Currency: "£"}
	p := &models.SubmissionPayload{
		ID:        "11111111-2222-3333-4444-555555555555",
		Reference: "RTNABCD2345",
		MethodID:  "in-store",
		Customer: models.CustomerDetails{
			Email:     "john.doe@onestock-retail.com",
			FirstName: "John",
			LastName:  "Doe",
			City:      "Manchester",
		},
		CreatedAt: time.Now().UTC(),
		Lines: []models.SubmissionLine{
			{
				ArticleID: "1006255003062",
				Sku:       "1006255003062",
				Name:      "T-shirt short sleeves",
				Quantity:  1,
				Action:    models.ActionReturn,
				Reason:    "Too small",
			},
			{
				ArticleID: "1006255002072",
				Sku:       "1006255002072",
				Name:      "T-shirt short sleeves",
				Quantity:  1,
				Action:    models.ActionExchange,
				Reason:    "Changed my mind",
				Exchange: &models.ExchangeDetail{
					Type:            models.ExchangeDifferentModel,
					TargetArticleID: "1006102405490",
					Delta:           &delta,
				},
			},
		},
	}

	require.NoError(t, s.CreateRequest(p))

	count, err := s.CountRequests()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lines, err := s.GetRequestLineCount(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)

	// Duplicate reference must be rejected by the unique constraint.
	p2 := *p
	p2.ID = "66666666-7777-8888-9999-000000000000"
	assert.Error(t, s.CreateRequest(&p2))
}
