package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrderAndLookup(t *testing.T) {
	c := New(DefaultArticles())

	require.Equal(t, 4, c.Len())
	articles := c.Articles()
	assert.Equal(t, "1006255003062", articles[0].ID, "catalog keeps feed order")
	assert.Equal(t, "1006102405490", articles[3].ID)

	a, ok := c.Get("1006255002072")
	require.True(t, ok)
	assert.Equal(t, "Grey", a.Color)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.False(t, c.Has("missing"))
}

func TestExchangeCandidatesExcludeOriginal(t *testing.T) {
	c := New(DefaultArticles())

	for _, a := range c.Articles() {
		candidates := c.ExchangeCandidates(a.ID)
		assert.Len(t, candidates, c.Len()-1)
		for _, cand := range candidates {
			assert.NotEqual(t, a.ID, cand.ID, "article %s offered itself as exchange", a.ID)
		}
	}
}

func TestMethodLookup(t *testing.T) {
	m, ok := Method("in-store")
	require.True(t, ok)
	assert.Equal(t, "In store return", m.Label)

	_, ok = Method("bike-courier")
	assert.False(t, ok)
}

func TestDefaultArticlesPrices(t *testing.T) {
	c := New(DefaultArticles())

	tee, ok := c.Get("1006255003062")
	require.True(t, ok)
	assert.Equal(t, "£9.99", tee.DisplayPrice())

	round, ok := c.Get("1006102405490")
	require.True(t, ok)
	assert.Equal(t, "£12.99", round.DisplayPrice())
}
