package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevasanjeevani/store/internal/domain"
)

func line(productID int64, price float64, discountPercent int64, qty int32) domain.LineItem {
	return domain.LineItem{
		ProductID:       productID,
		UnitPrice:       decimal.NewFromFloat(price),
		DiscountPercent: decimal.NewFromInt(discountPercent),
		Quantity:        qty,
	}
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, DefaultConfig())

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.ShippingCost.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, int32(0), totals.ItemCount)
}

func TestComputeTotals_SingleLine(t *testing.T) {
	lines := []domain.LineItem{line(1, 499, 0, 1)}

	totals := ComputeTotals(lines, DefaultConfig())

	assert.Equal(t, "499", totals.Subtotal.String())
	assert.Equal(t, "0", totals.DiscountAmount.String())
	assert.Equal(t, "89.82", totals.TaxAmount.String())
	// 499 is under the 999 free-shipping threshold
	assert.Equal(t, "59", totals.ShippingCost.String())
	assert.Equal(t, "647.82", totals.Total.String())
	assert.Equal(t, int32(1), totals.ItemCount)
}

func TestComputeTotals_AlternateShippingPolicy(t *testing.T) {
	cfg := Config{
		FreeShippingOver: decimal.NewFromInt(500),
		FlatShippingFee:  decimal.NewFromInt(50),
	}

	totals := ComputeTotals([]domain.LineItem{line(1, 499, 0, 1)}, cfg)
	assert.Equal(t, "50", totals.ShippingCost.String())
	assert.Equal(t, "638.82", totals.Total.String())

	// 501 clears the 500 threshold
	totals = ComputeTotals([]domain.LineItem{line(1, 501, 0, 1)}, cfg)
	assert.True(t, totals.ShippingCost.IsZero())
}

func TestComputeTotals_DiscountLine(t *testing.T) {
	lines := []domain.LineItem{line(1, 100, 20, 2)}

	totals := ComputeTotals(lines, DefaultConfig())

	assert.Equal(t, "200", totals.Subtotal.String())
	assert.Equal(t, "40", totals.DiscountAmount.String())
	// tax is applied to the pre-discount subtotal
	assert.Equal(t, "36", totals.TaxAmount.String())
}

func TestComputeTotals_TaxPreDiscount(t *testing.T) {
	lines := []domain.LineItem{line(1, 1000, 50, 1)}

	totals := ComputeTotals(lines, DefaultConfig())

	// 18% of 1000, not of 500
	assert.Equal(t, "180", totals.TaxAmount.String())
	assert.True(t, totals.ShippingCost.IsZero())
	assert.Equal(t, "1180", totals.Total.String())
}

func TestComputeTotals_FreeShippingBoundary(t *testing.T) {
	cfg := DefaultConfig()

	// exactly at the threshold still pays shipping
	totals := ComputeTotals([]domain.LineItem{line(1, 999, 0, 1)}, cfg)
	assert.Equal(t, "59", totals.ShippingCost.String())

	totals = ComputeTotals([]domain.LineItem{line(1, 999.01, 0, 1)}, cfg)
	assert.True(t, totals.ShippingCost.IsZero())
}

func TestComputeTotals_LinearInQuantity(t *testing.T) {
	base := []domain.LineItem{
		line(1, 120.50, 10, 2),
		line(2, 75, 0, 3),
	}
	doubled := []domain.LineItem{
		line(1, 120.50, 10, 4),
		line(2, 75, 0, 6),
	}

	a := ComputeTotals(base, DefaultConfig())
	b := ComputeTotals(doubled, DefaultConfig())

	assert.True(t, a.Subtotal.Mul(decimal.NewFromInt(2)).Equal(b.Subtotal))
	assert.True(t, a.DiscountAmount.Mul(decimal.NewFromInt(2)).Equal(b.DiscountAmount))
	assert.Equal(t, a.ItemCount*2, b.ItemCount)
}

func TestComputeTotals_Idempotent(t *testing.T) {
	lines := []domain.LineItem{
		line(1, 33.33, 7, 3),
		line(2, 9.99, 0, 1),
	}

	first := ComputeTotals(lines, DefaultConfig())
	second := ComputeTotals(lines, DefaultConfig())

	require.True(t, first.Total.Equal(second.Total))
	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	require.True(t, first.TaxAmount.Equal(second.TaxAmount))
}

func TestComputeTotals_RoundedToTwoPlaces(t *testing.T) {
	lines := []domain.LineItem{line(1, 33.335, 0, 1)}

	totals := ComputeTotals(lines, DefaultConfig())

	assert.True(t, totals.Subtotal.Exponent() >= -2)
	assert.True(t, totals.TaxAmount.Exponent() >= -2)
	assert.True(t, totals.Total.Exponent() >= -2)
}

func TestComputeTotals_SubtotalInvariant(t *testing.T) {
	lines := []domain.LineItem{
		line(1, 250, 0, 2),
		line(2, 100, 10, 1),
	}

	totals := ComputeTotals(lines, DefaultConfig())

	want := decimal.Zero
	for _, l := range lines {
		want = want.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, totals.Subtotal.Equal(want))

	sum := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount).Add(totals.ShippingCost)
	assert.True(t, totals.Total.Equal(sum))
}
