package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "PENDING"
	QuoteStatusAccepted  QuoteStatus = "ACCEPTED"
	QuoteStatusRejected  QuoteStatus = "REJECTED"
	QuoteStatusFulfilled QuoteStatus = "FULFILLED"
	QuoteStatusExpired   QuoteStatus = "EXPIRED"
)

// LineItem is one equipment SKU and the requested quantity, snapshotted
// from the catalog when the quote is built.
type LineItem struct {
	EquipmentID   string              `json:"equipment_id"`
	SKU           string              `json:"sku"`
	Name          string              `json:"name"`
	Category      string              `json:"category"`
	UnitDailyRate decimal.NullDecimal `json:"unit_daily_rate"`
	Quantity      int32               `json:"quantity"`
}

// PricingUnavailable reports a "call for pricing" item.
func (li LineItem) PricingUnavailable() bool {
	return !li.UnitDailyRate.Valid
}

// PriceBreakdown holds full-precision amounts. Round only for display.
type PriceBreakdown struct {
	LineItemsTotal decimal.Decimal `json:"line_items_total"`
	Insurance      decimal.Decimal `json:"insurance"`
	Delivery       decimal.Decimal `json:"delivery"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
}

// Rounded returns a copy with every amount rounded to cents.
func (b PriceBreakdown) Rounded() PriceBreakdown {
	return PriceBreakdown{
		LineItemsTotal: b.LineItemsTotal.Round(2),
		Insurance:      b.Insurance.Round(2),
		Delivery:       b.Delivery.Round(2),
		Subtotal:       b.Subtotal.Round(2),
		Tax:            b.Tax.Round(2),
		Total:          b.Total.Round(2),
	}
}

type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type QuoteItem struct {
	LineItem
	LineTotal decimal.Decimal `json:"line_total"`
}

type Quote struct {
	ID                 string         `json:"id"`
	Reference          string         `json:"reference"`
	Client             Client         `json:"client"`
	StartDate          string         `json:"start_date"`
	EndDate            string         `json:"end_date"`
	DurationDays       int32          `json:"duration_days"`
	DeliveryRequired   bool           `json:"delivery_required"`
	Items              []QuoteItem    `json:"items"`
	Pricing            PriceBreakdown `json:"pricing"`
	PricingUnavailable []string       `json:"pricing_unavailable"`
	Notes              string         `json:"notes"`
	Status             QuoteStatus    `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// LineItems strips per-line totals, e.g. for re-running fulfillment.
func (q *Quote) LineItems() []LineItem {
	items := make([]LineItem, len(q.Items))
	for i, it := range q.Items {
		items[i] = it.LineItem
	}
	return items
}
