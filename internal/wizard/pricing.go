package wizard

import (
	"github.com/mbousquet-onestock/exchange/internal/models"
	"github.com/shopspring/decimal"
)

// ResolveExchangeDelta computes who owes whom when exchanging original
// for target. A dearer target means the customer pays the difference
// through a payment link; a cheaper one means a partial refund. Amounts
// are exact decimals in the original article's currency; there is no
// currency conversion.
func ResolveExchangeDelta(original, target models.Article) models.ExchangeDelta {
	switch target.Price.Cmp(original.Price) {
	case 1:
		return models.ExchangeDelta{
			Kind:     models.DeltaPayByLink,
			Amount:   target.Price.Sub(original.Price),
			Currency: original.Currency,
		}
	case -1:
		return models.ExchangeDelta{
			Kind:     models.DeltaRefund,
			Amount:   original.Price.Sub(target.Price),
			Currency: original.Currency,
		}
	}
	return models.ExchangeDelta{
		Kind:     models.DeltaNoDifference,
		Amount:   decimal.Zero,
		Currency: original.Currency,
	}
}

// EffectiveExchangeSize resolves the size a same-model exchange ships
// with: the chosen size, or the original article's size when nothing
// was picked. The fallback lives here rather than in the stored config.
func EffectiveExchangeSize(cfg models.SelectionConfig, a models.Article) string {
	if cfg.ExchangeSize != "" {
		return cfg.ExchangeSize
	}
	return a.Size
}

// EffectiveExchangeColor is the color counterpart of
// EffectiveExchangeSize.
func EffectiveExchangeColor(cfg models.SelectionConfig, a models.Article) string {
	if cfg.ExchangeColor != "" {
		return cfg.ExchangeColor
	}
	return a.Color
}
