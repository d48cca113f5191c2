package pricing

import (
	"testing"

	"equipment-rental-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func mustPeriod(t *testing.T, start, end string) RentalPeriod {
	t.Helper()
	p, err := ParsePeriod(start, end)
	require.NoError(t, err)
	return p
}

var nycRates = Rates{InsuranceRate: dec("0.05"), TaxRate: dec("0.08875")}

func TestComputeQuote(t *testing.T) {
	t.Run("Single item over three days", func(t *testing.T) {
		items := []domain.LineItem{{EquipmentID: "cam-1", SKU: "CAM1", Name: "Camera", UnitDailyRate: rate("100"), Quantity: 2}}

		res, err := ComputeQuote(items, mustPeriod(t, "2024-03-01", "2024-03-04"), false, decimal.Zero, nycRates)
		require.NoError(t, err)

		assert.Equal(t, int32(3), res.DurationDays)
		assertDecimal(t, "600", res.Breakdown.LineItemsTotal)
		assertDecimal(t, "30", res.Breakdown.Insurance)
		assertDecimal(t, "0", res.Breakdown.Delivery)
		assertDecimal(t, "630", res.Breakdown.Subtotal)
		assertDecimal(t, "55.9125", res.Breakdown.Tax)
		assertDecimal(t, "685.9125", res.Breakdown.Total)
		assert.False(t, res.Empty)
		assert.Empty(t, res.PricingUnavailable)
		assert.True(t, res.IsFinal())
		require.Len(t, res.Lines, 1)
		assertDecimal(t, "600", res.Lines[0].Total)
	})

	t.Run("Empty cart", func(t *testing.T) {
		res, err := ComputeQuote(nil, mustPeriod(t, "2024-03-01", "2024-03-02"), false, decimal.Zero, nycRates)
		require.NoError(t, err)

		assert.True(t, res.Empty)
		assert.False(t, res.IsFinal())
		assertDecimal(t, "0", res.Breakdown.LineItemsTotal)
		assertDecimal(t, "0", res.Breakdown.Insurance)
		assertDecimal(t, "0", res.Breakdown.Subtotal)
		assertDecimal(t, "0", res.Breakdown.Tax)
		assertDecimal(t, "0", res.Breakdown.Total)
	})

	t.Run("Call for pricing item", func(t *testing.T) {
		items := []domain.LineItem{
			{EquipmentID: "light-1", UnitDailyRate: rate("25.50"), Quantity: 1},
			{EquipmentID: "crane-9", Quantity: 1},
		}

		res, err := ComputeQuote(items, mustPeriod(t, "2024-03-01", "2024-03-03"), false, decimal.Zero, nycRates)
		require.NoError(t, err)

		assertDecimal(t, "51", res.Breakdown.LineItemsTotal)
		assert.Equal(t, []string{"crane-9"}, res.PricingUnavailable)
		assert.True(t, res.Lines[1].PricingUnavailable)
		assertDecimal(t, "0", res.Lines[1].Total)
		assert.False(t, res.IsFinal())
	})

	t.Run("Delivery only when required", func(t *testing.T) {
		items := []domain.LineItem{{EquipmentID: "a", UnitDailyRate: rate("10"), Quantity: 1}}
		period := mustPeriod(t, "2024-03-01", "2024-03-01")

		with, err := ComputeQuote(items, period, true, dec("75"), nycRates)
		require.NoError(t, err)
		assertDecimal(t, "75", with.Breakdown.Delivery)
		assertDecimal(t, "85.5", with.Breakdown.Subtotal)

		without, err := ComputeQuote(items, period, false, dec("75"), nycRates)
		require.NoError(t, err)
		assertDecimal(t, "0", without.Breakdown.Delivery)
		assertDecimal(t, "10.5", without.Breakdown.Subtotal)
	})

	t.Run("Negative delivery cost", func(t *testing.T) {
		_, err := ComputeQuote(nil, mustPeriod(t, "2024-03-01", "2024-03-02"), true, dec("-1"), nycRates)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Negative rates", func(t *testing.T) {
		period := mustPeriod(t, "2024-03-01", "2024-03-02")
		_, err := ComputeQuote(nil, period, false, decimal.Zero, Rates{InsuranceRate: dec("-0.01"), TaxRate: dec("0.08")})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = ComputeQuote(nil, period, false, decimal.Zero, Rates{InsuranceRate: dec("0.05"), TaxRate: dec("-0.08")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Non-positive quantity", func(t *testing.T) {
		period := mustPeriod(t, "2024-03-01", "2024-03-02")
		for _, qty := range []int32{0, -3} {
			items := []domain.LineItem{{EquipmentID: "a", UnitDailyRate: rate("10"), Quantity: qty}}
			_, err := ComputeQuote(items, period, false, decimal.Zero, nycRates)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("Negative daily rate", func(t *testing.T) {
		items := []domain.LineItem{{EquipmentID: "a", UnitDailyRate: rate("-10"), Quantity: 1}}
		_, err := ComputeQuote(items, mustPeriod(t, "2024-03-01", "2024-03-02"), false, decimal.Zero, nycRates)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("End before start", func(t *testing.T) {
		start, _ := ParseDate("2024-03-05")
		end, _ := ParseDate("2024-03-01")
		_, err := ComputeQuote(nil, RentalPeriod{StartDate: start, EndDate: end}, false, decimal.Zero, nycRates)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("Zero period", func(t *testing.T) {
		_, err := ComputeQuote(nil, RentalPeriod{}, false, decimal.Zero, nycRates)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestComputeQuote_Identities(t *testing.T) {
	items := []domain.LineItem{
		{EquipmentID: "a", UnitDailyRate: rate("19.99"), Quantity: 3},
		{EquipmentID: "b", UnitDailyRate: rate("0.01"), Quantity: 7},
		{EquipmentID: "c", UnitDailyRate: rate("1234.567"), Quantity: 1},
		{EquipmentID: "d", Quantity: 4},
	}
	rates := Rates{InsuranceRate: dec("0.0725"), TaxRate: dec("0.08875")}

	for _, end := range []string{"2024-01-01", "2024-01-02", "2024-01-10", "2024-02-29", "2024-12-31"} {
		res, err := ComputeQuote(items, mustPeriod(t, "2024-01-01", end), true, dec("49.95"), rates)
		require.NoError(t, err)

		b := res.Breakdown
		assert.True(t, b.Subtotal.Equal(b.LineItemsTotal.Add(b.Insurance).Add(b.Delivery)), "subtotal identity for %s", end)
		assert.True(t, b.Total.Equal(b.Subtotal.Add(b.Tax)), "total identity for %s", end)
		assert.False(t, b.LineItemsTotal.IsNegative())
	}
}

func TestComputeQuote_ScalesWithDuration(t *testing.T) {
	items := []domain.LineItem{
		{EquipmentID: "a", UnitDailyRate: rate("33.33"), Quantity: 2},
		{EquipmentID: "b", UnitDailyRate: rate("7.10"), Quantity: 5},
	}

	short, err := ComputeQuote(items, mustPeriod(t, "2024-05-01", "2024-05-04"), false, decimal.Zero, nycRates)
	require.NoError(t, err)
	long, err := ComputeQuote(items, mustPeriod(t, "2024-05-01", "2024-05-07"), false, decimal.Zero, nycRates)
	require.NoError(t, err)

	assert.Equal(t, short.DurationDays*2, long.DurationDays)
	assert.True(t, long.Breakdown.LineItemsTotal.Equal(short.Breakdown.LineItemsTotal.Mul(decimal.NewFromInt(2))))
}

func TestComputeQuote_CenturiesLongRental(t *testing.T) {
	items := []domain.LineItem{{EquipmentID: "a", UnitDailyRate: rate("10"), Quantity: 1}}

	res, err := ComputeQuote(items, mustPeriod(t, "2000-01-01", "2400-01-01"), false, decimal.Zero, nycRates)
	require.NoError(t, err)
	assert.Equal(t, int32(146097), res.DurationDays)
	assert.Equal(t, "1460970", res.Breakdown.LineItemsTotal.String())
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"685.9125", "$685.91"},
		{"55.9150", "$55.92"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-42.1", "-$42.10"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(dec(tt.amount)))
		})
	}
}

func TestPriceBreakdown_Rounded(t *testing.T) {
	b := domain.PriceBreakdown{
		LineItemsTotal: dec("600"),
		Insurance:      dec("30"),
		Delivery:       dec("0"),
		Subtotal:       dec("630"),
		Tax:            dec("55.9125"),
		Total:          dec("685.9125"),
	}

	r := b.Rounded()
	assertDecimal(t, "55.91", r.Tax)
	assertDecimal(t, "685.91", r.Total)
	assertDecimal(t, "55.9125", b.Tax)
}
