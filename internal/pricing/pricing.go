package pricing

import (
	"fmt"

	"equipment-rental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Rates is the insurance and tax policy applied to a quote. It is supplied
// by the caller so one deployment can serve several jurisdictions.
type Rates struct {
	InsuranceRate decimal.Decimal
	TaxRate       decimal.Decimal
}

func (r Rates) Validate() error {
	if r.InsuranceRate.IsNegative() {
		return fmt.Errorf("%w: insurance rate must be >= 0, got %s", ErrInvalidInput, r.InsuranceRate)
	}
	if r.TaxRate.IsNegative() {
		return fmt.Errorf("%w: tax rate must be >= 0, got %s", ErrInvalidInput, r.TaxRate)
	}
	return nil
}

// LineTotal is rate x quantity x days for one line item.
type LineTotal struct {
	EquipmentID        string          `json:"equipment_id"`
	Total              decimal.Decimal `json:"total"`
	PricingUnavailable bool            `json:"pricing_unavailable"`
}

// Result is a computed quote. PricingUnavailable lists the equipment ids of
// "call for pricing" items, which contribute nothing to the totals.
type Result struct {
	Breakdown          domain.PriceBreakdown `json:"breakdown"`
	DurationDays       int32                 `json:"duration_days"`
	Lines              []LineTotal           `json:"lines"`
	PricingUnavailable []string              `json:"pricing_unavailable"`
	Empty              bool                  `json:"empty"`
}

// IsFinal reports whether the total can be presented as the final price.
func (r Result) IsFinal() bool {
	return !r.Empty && len(r.PricingUnavailable) == 0
}

// ComputeQuote prices items over period. Amounts keep full precision; no
// rounding happens here. On error no result is returned.
func ComputeQuote(items []domain.LineItem, period RentalPeriod, deliveryRequired bool, deliveryCost decimal.Decimal, rates Rates) (Result, error) {
	if err := period.Validate(); err != nil {
		return Result{}, err
	}
	if err := rates.Validate(); err != nil {
		return Result{}, err
	}
	if deliveryCost.IsNegative() {
		return Result{}, fmt.Errorf("%w: delivery cost must be >= 0, got %s", ErrInvalidInput, deliveryCost)
	}
	if err := ValidateLineItems(items); err != nil {
		return Result{}, err
	}

	days := period.DurationDays()
	dayCount := decimal.NewFromInt32(days)

	result := Result{
		DurationDays:       days,
		Lines:              make([]LineTotal, 0, len(items)),
		PricingUnavailable: []string{},
		Empty:              len(items) == 0,
	}

	lineItemsTotal := decimal.Zero
	for _, item := range items {
		line := LineTotal{EquipmentID: item.EquipmentID, Total: decimal.Zero}
		if item.PricingUnavailable() {
			line.PricingUnavailable = true
			result.PricingUnavailable = append(result.PricingUnavailable, item.EquipmentID)
		} else {
			line.Total = item.UnitDailyRate.Decimal.Mul(decimal.NewFromInt32(item.Quantity)).Mul(dayCount)
		}
		lineItemsTotal = lineItemsTotal.Add(line.Total)
		result.Lines = append(result.Lines, line)
	}

	delivery := decimal.Zero
	if deliveryRequired {
		delivery = deliveryCost
	}

	insurance := lineItemsTotal.Mul(rates.InsuranceRate)
	subtotal := lineItemsTotal.Add(insurance).Add(delivery)
	tax := subtotal.Mul(rates.TaxRate)

	result.Breakdown = domain.PriceBreakdown{
		LineItemsTotal: lineItemsTotal,
		Insurance:      insurance,
		Delivery:       delivery,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          subtotal.Add(tax),
	}
	return result, nil
}

// ValidateLineItems checks quantities and rates of a cart.
func ValidateLineItems(items []domain.LineItem) error {
	for i, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d (%s): quantity must be positive, got %d", ErrInvalidInput, i, item.EquipmentID, item.Quantity)
		}
		if item.UnitDailyRate.Valid && item.UnitDailyRate.Decimal.IsNegative() {
			return fmt.Errorf("%w: item %d (%s): daily rate must be >= 0", ErrInvalidInput, i, item.EquipmentID)
		}
	}
	return nil
}
