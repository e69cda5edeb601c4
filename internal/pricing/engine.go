package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sevasanjeevani/store/internal/domain"
)

// TaxRate is the flat GST rate applied to the pre-discount subtotal.
// Applying it before the discount matches the storefront's historical
// behavior and must not change without a product decision.
var TaxRate = decimal.NewFromFloat(0.18)

var hundred = decimal.NewFromInt(100)

// Config holds the shipping policy. The storefront historically used
// two threshold/fee pairs (999/59 and 500/50) in different checkout
// paths; there is exactly one pair here, loaded from configuration.
type Config struct {
	FreeShippingOver decimal.Decimal
	FlatShippingFee  decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		FreeShippingOver: decimal.NewFromInt(999),
		FlatShippingFee:  decimal.NewFromInt(59),
	}
}

// ComputeTotals derives cart totals from the given lines. It is pure:
// same lines and config always produce the same totals. An empty line
// list yields all-zero totals. Every derived term is rounded to two
// places, so persisted totals equal displayed totals.
func ComputeTotals(lines []domain.LineItem, cfg Config) domain.CartTotals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	var itemCount int32

	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal = subtotal.Add(line.UnitPrice.Mul(qty))
		discount = discount.Add(line.UnitPrice.Mul(line.DiscountPercent).Div(hundred).Mul(qty))
		itemCount += line.Quantity
	}

	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	tax := subtotal.Mul(TaxRate).Round(2)
	shipping := shippingCost(subtotal, itemCount, cfg)

	total := subtotal.Sub(discount).Add(tax).Add(shipping).Round(2)

	return domain.CartTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		ShippingCost:   shipping,
		Total:          total,
		ItemCount:      itemCount,
	}
}

func shippingCost(subtotal decimal.Decimal, itemCount int32, cfg Config) decimal.Decimal {
	if itemCount == 0 {
		return decimal.Zero
	}
	if subtotal.GreaterThan(cfg.FreeShippingOver) {
		return decimal.Zero
	}
	return cfg.FlatShippingFee.Round(2)
}
