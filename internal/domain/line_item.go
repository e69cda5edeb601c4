package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineKey identifies a cart line. The same product with a different
// variant is a distinct line.
type LineKey struct {
	ProductID int64
	Variant   string
}

type LineItem struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Variant         string          `json:"variant,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	MRP             decimal.Decimal `json:"mrp"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Quantity        int32           `json:"quantity"`
	AddedAt         time.Time       `json:"added_at"`
}

func (l LineItem) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Variant: l.Variant}
}

var (
	percentMax = decimal.NewFromInt(100)
)

// Validate checks the invariants a line must hold before it can be
// priced or snapshotted into an order.
func (l LineItem) Validate() error {
	if l.ProductID <= 0 {
		return &ValidationError{ProductID: l.ProductID, Field: "product_id", Message: "must be positive"}
	}
	if l.Quantity < 1 {
		return &ValidationError{ProductID: l.ProductID, Field: "quantity", Message: "must be at least 1"}
	}
	if l.UnitPrice.IsNegative() {
		return &ValidationError{ProductID: l.ProductID, Field: "unit_price", Message: "must not be negative"}
	}
	if l.MRP.IsNegative() {
		return &ValidationError{ProductID: l.ProductID, Field: "mrp", Message: "must not be negative"}
	}
	if !l.MRP.IsZero() && l.MRP.LessThan(l.UnitPrice) {
		return &ValidationError{ProductID: l.ProductID, Field: "mrp", Message: "must not be below unit price"}
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(percentMax) {
		return &ValidationError{ProductID: l.ProductID, Field: "discount_percent", Message: "must be between 0 and 100"}
	}
	return nil
}
