package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnAction is what the customer wants done with a selected article.
type ReturnAction string

const (
	ActionReturn   ReturnAction = "return"
	ActionExchange ReturnAction = "exchange"
)

// ExchangeType distinguishes a size/color swap from a swap for a
// different catalog article.
type ExchangeType string

const (
	ExchangeSameModel      ExchangeType = "same_model"
	ExchangeDifferentModel ExchangeType = "different_model"
)

type Article struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"` // display symbol, e.g. "£"
	Color    string          `json:"color"`
	Size     string          `json:"size"`
	Sku      string          `json:"sku"`
	ImageURL string          `json:"image_url"`
	Status   string          `json:"status"` // fulfillment status, e.g. "Fulfilled"
	Quantity int             `json:"quantity"`
}

// DisplayPrice formats the price with the article's currency symbol.
func (a Article) DisplayPrice() string {
	return a.Currency + a.Price.StringFixed(2)
}

// SelectionConfig is the disposition chosen for one selected article.
// ExchangeSize/ExchangeColor left empty mean "keep the original value";
// resolve them through the wizard package accessors rather than reading
// the fields directly.
type SelectionConfig struct {
	Action            ReturnAction `json:"action"`
	Reason            string       `json:"reason"`
	ExchangeType      ExchangeType `json:"exchange_type"`
	ExchangeSize      string       `json:"exchange_size,omitempty"`
	ExchangeColor     string       `json:"exchange_color,omitempty"`
	ExchangeArticleID string       `json:"exchange_article_id,omitempty"`
}

type CustomerDetails struct {
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// ReturnMethod is a logistics channel for sending items back.
type ReturnMethod struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// DeltaKind says who owes whom when exchanging across price points.
type DeltaKind string

const (
	DeltaPayByLink    DeltaKind = "pay_by_link"
	DeltaRefund       DeltaKind = "refund"
	DeltaNoDifference DeltaKind = "no_difference"
)

// ExchangeDelta is the price difference between an original article and
// its exchange target. Amount is always non-negative; Kind carries the
// direction. Derived on demand, never stored.
type ExchangeDelta struct {
	Kind     DeltaKind       `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (d ExchangeDelta) DisplayAmount() string {
	return d.Currency + d.Amount.StringFixed(2)
}

// ExchangeDetail is the resolved exchange description captured in a
// submission line. For a same-model exchange Size and Color are set; for
// a different-model exchange TargetArticleID and Delta are set.
type ExchangeDetail struct {
	Type            ExchangeType   `json:"type"`
	Size            string         `json:"size,omitempty"`
	Color           string         `json:"color,omitempty"`
	TargetArticleID string         `json:"target_article_id,omitempty"`
	Delta           *ExchangeDelta `json:"delta,omitempty"`
}

// SubmissionLine is one article's worth of the final request.
type SubmissionLine struct {
	ArticleID string          `json:"article_id"`
	Sku       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Action    ReturnAction    `json:"action"`
	Reason    string          `json:"reason"`
	Exchange  *ExchangeDetail `json:"exchange,omitempty"`
}

// SubmissionPayload is the immutable snapshot handed to the submission
// transport once the customer confirms. Later edits to the wizard
// session never reach a payload that was already built.
type SubmissionPayload struct {
	ID        string           `json:"id"`        // internal uuid
	Reference string           `json:"reference"` // public "RTN..." reference
	Lines     []SubmissionLine `json:"lines"`
	MethodID  string           `json:"method_id"`
	Customer  CustomerDetails  `json:"customer"`
	CreatedAt time.Time        `json:"created_at"`
}
