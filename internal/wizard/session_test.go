package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
	"github.com/mbousquet-onestock/exchange/internal/models"
)

const (
	blackTee = "1006255003062" // £9.99
	greyTee  = "1006255002072" // £9.99
	roundTee = "1006102405490" // £12.99
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(catalog.New(catalog.DefaultArticles()))
}

func TestToggleCreatesDefaultConfig(t *testing.T) {
	s := newTestSession(t)

	_, ok := s.Config(blackTee)
	assert.False(t, ok, "no config before selection")

	s.ToggleSelection(blackTee)
	require.True(t, s.IsSelected(blackTee))

	cfg, ok := s.Config(blackTee)
	require.True(t, ok, "selecting must create a config")
	assert.Equal(t, models.ActionReturn, cfg.Action)
	assert.Equal(t, catalog.Reasons[0], cfg.Reason)
	assert.Equal(t, models.ExchangeSameModel, cfg.ExchangeType)
	assert.Empty(t, cfg.ExchangeSize)
	assert.Empty(t, cfg.ExchangeColor)
}

func TestConfigSurvivesDeselectReselect(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection(blackTee)
	s.SetAction(blackTee, models.ActionExchange)
	s.SetReason(blackTee, "Too big")
	s.SetExchangeSize(blackTee, "L")

	s.ToggleSelection(blackTee) // deselect
	assert.False(t, s.IsSelected(blackTee))
	s.ToggleSelection(blackTee) // reselect

	cfg, ok := s.Config(blackTee)
	require.True(t, ok)
	assert.Equal(t, models.ActionExchange, cfg.Action)
	assert.Equal(t, "Too big", cfg.Reason)
	assert.Equal(t, "L", cfg.ExchangeSize)
}

func TestToggleUnknownArticleIgnored(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection("no-such-article")
	assert.Equal(t, 0, s.SelectionCount())
	_, ok := s.Config("no-such-article")
	assert.False(t, ok)
}

func TestOrphanConfigUpdateIsNoOp(t *testing.T) {
	s := newTestSession(t)
	s.SetReason(blackTee, "Damaged item") // never selected
	_, ok := s.Config(blackTee)
	assert.False(t, ok, "update must not conjure a config")
}

func TestSelectedArticlesKeepCatalogOrder(t *testing.T) {
	s := newTestSession(t)
	// Select out of catalog order.
	s.ToggleSelection(roundTee)
	s.ToggleSelection(blackTee)

	got := s.SelectedArticles()
	require.Len(t, got, 2)
	assert.Equal(t, blackTee, got[0].ID)
	assert.Equal(t, roundTee, got[1].ID)
}

func TestNextBlockedOnEmptySelection(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.CanAdvance())
	assert.False(t, s.Next())
	assert.Equal(t, StepSelection, s.Step())
}

func TestNextBlockedWithoutMethod(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection(blackTee)
	require.True(t, s.Next())
	require.True(t, s.Next())
	require.Equal(t, StepMethod, s.Step())

	assert.False(t, s.Next(), "no method chosen yet")
	assert.Equal(t, StepMethod, s.Step())

	s.SetMethod("in-store")
	assert.True(t, s.Next())
	assert.Equal(t, StepValidation, s.Step())
}

func TestSetMethodRejectsUnknownID(t *testing.T) {
	s := newTestSession(t)
	s.SetMethod("carrier-pigeon")
	assert.Empty(t, s.Method())
}

func TestConfigurationGuardRequiresExchangeTarget(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection(blackTee)
	require.True(t, s.Next())
	require.Equal(t, StepConfiguration, s.Step())

	s.SetAction(blackTee, models.ActionExchange)
	s.SetExchangeType(blackTee, models.ExchangeDifferentModel)

	assert.False(t, s.Next(), "different-model exchange without a target must not advance")
	assert.Equal(t, StepConfiguration, s.Step())

	s.SetExchangeTarget(blackTee, roundTee)
	assert.True(t, s.Next())
	assert.Equal(t, StepMethod, s.Step())
}

func TestSameModelExchangeAdvancesWithoutTarget(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection(blackTee)
	require.True(t, s.Next())

	s.SetAction(blackTee, models.ActionExchange) // same model by default
	assert.True(t, s.Next())
}

func TestSelfExchangeTargetRejected(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection(blackTee)
	s.SetExchangeTarget(blackTee, blackTee)

	cfg, _ := s.Config(blackTee)
	assert.Empty(t, cfg.ExchangeArticleID)

	s.SetExchangeTarget(blackTee, "no-such-article")
	cfg, _ = s.Config(blackTee)
	assert.Empty(t, cfg.ExchangeArticleID)
}

func TestBackNavigation(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.Back(), "back disabled on the first step")

	s.ToggleSelection(blackTee)
	require.True(t, s.Next())
	require.Equal(t, StepConfiguration, s.Step())

	assert.True(t, s.Back())
	assert.Equal(t, StepSelection, s.Step())
}

func TestConfirmationIsTerminal(t *testing.T) {
	s := completedSession(t)
	require.Equal(t, StepConfirmation, s.Step())

	assert.False(t, s.Next())
	assert.False(t, s.Back())
	assert.Equal(t, StepConfirmation, s.Step())
}

func TestRestartResetsEverything(t *testing.T) {
	s := completedSession(t)
	s.Restart()

	assert.Equal(t, StepSelection, s.Step())
	assert.Equal(t, 0, s.SelectionCount())
	assert.Empty(t, s.Method())
	assert.Nil(t, s.Submission())
	_, ok := s.Config(blackTee)
	assert.False(t, ok)
	assert.Equal(t, catalog.DefaultCustomer(), s.Customer())
}

func TestSetCustomerField(t *testing.T) {
	s := newTestSession(t)
	s.SetCustomerField("email", "jane.doe@example.com")
	s.SetCustomerField("city", "Leeds")
	s.SetCustomerField("shoe_size", "42") // unknown field, ignored

	c := s.Customer()
	assert.Equal(t, "jane.doe@example.com", c.Email)
	assert.Equal(t, "Leeds", c.City)
	assert.Equal(t, "Doe", c.LastName, "untouched fields keep their defaults")
}

func TestDeltaOnlyForDifferentModelExchange(t *testing.T) {
	s := newTestSession(t)
	s.ToggleSelection(blackTee)

	_, ok := s.Delta(blackTee)
	assert.False(t, ok, "plain return has no delta")

	s.SetAction(blackTee, models.ActionExchange)
	_, ok = s.Delta(blackTee)
	assert.False(t, ok, "same-model exchange has no delta")

	s.SetExchangeType(blackTee, models.ExchangeDifferentModel)
	_, ok = s.Delta(blackTee)
	assert.False(t, ok, "no target chosen yet")

	s.SetExchangeTarget(blackTee, roundTee)
	d, ok := s.Delta(blackTee)
	require.True(t, ok)
	assert.Equal(t, models.DeltaPayByLink, d.Kind)
}

// completedSession walks a two-item return through the whole wizard.
func completedSession(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	s.ToggleSelection(blackTee)
	s.ToggleSelection(greyTee)
	require.True(t, s.Next(), "selection -> configuration")
	require.True(t, s.Next(), "configuration -> method")
	s.SetMethod("in-store")
	require.True(t, s.Next(), "method -> validation")
	require.True(t, s.Next(), "validation -> confirmation")
	return s
}

func TestFullReturnFlow(t *testing.T) {
	s := completedSession(t)

	p := s.Submission()
	require.NotNil(t, p)
	assert.Equal(t, "in-store", p.MethodID)
	require.Len(t, p.Lines, 2)
	for _, line := range p.Lines {
		assert.Equal(t, models.ActionReturn, line.Action)
		assert.Equal(t, catalog.Reasons[0], line.Reason)
		assert.Nil(t, line.Exchange)
	}
	assert.Equal(t, blackTee, p.Lines[0].ArticleID)
	assert.Equal(t, greyTee, p.Lines[1].ArticleID)
}
