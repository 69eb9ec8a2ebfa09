package wizard

import (
	"crypto/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mbousquet-onestock/exchange/internal/models"
)

// buildSubmission snapshots the session into the payload handed to the
// submission transport. Everything is copied: configs are dereferenced,
// the customer record is a value copy, and deltas are resolved now, so
// no later session edit can reach a built payload. Caller holds the
// lock.
func (s *Session) buildSubmission() *models.SubmissionPayload {
	p := &models.SubmissionPayload{
		ID:        uuid.NewString(),
		Reference: generateReference(),
		MethodID:  s.method,
		Customer:  s.customer,
		CreatedAt: time.Now().UTC(),
	}
	for _, a := range s.selectedArticles() {
		cfg := s.configs[a.ID]
		if cfg == nil {
			continue
		}
		line := models.SubmissionLine{
			ArticleID: a.ID,
			Sku:       a.Sku,
			Name:      a.Name,
			Quantity:  a.Quantity,
			Action:    cfg.Action,
			Reason:    cfg.Reason,
		}
		if cfg.Action == models.ActionExchange {
			line.Exchange = s.exchangeDetail(*cfg, a)
		}
		p.Lines = append(p.Lines, line)
	}
	return p
}

func (s *Session) exchangeDetail(cfg models.SelectionConfig, a models.Article) *models.ExchangeDetail {
	if cfg.ExchangeType == models.ExchangeDifferentModel {
		d := &models.ExchangeDetail{
			Type:            models.ExchangeDifferentModel,
			TargetArticleID: cfg.ExchangeArticleID,
		}
		if target, ok := s.catalog.Get(cfg.ExchangeArticleID); ok {
			delta := ResolveExchangeDelta(a, target)
			d.Delta = &delta
		}
		return d
	}
	return &models.ExchangeDetail{
		Type:  models.ExchangeSameModel,
		Size:  EffectiveExchangeSize(cfg, a),
		Color: EffectiveExchangeColor(cfg, a),
	}
}

// generateReference makes the short public reference quoted in the
// confirmation email. Ambiguous characters are left out of the charset.
func generateReference() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "RTN" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return "RTN" + string(b)
}
