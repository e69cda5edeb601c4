package inventory

import (
	"context"
	"errors"
)

// Common errors returned by the store
var (
	ErrProductNotFound = errors.New("product not found")
)

// Overcommit records a post-checkout deduction that drove availability
// negative. It is reported for manual reconciliation, never treated as
// a failure of the order that caused it.
type Overcommit struct {
	ProductID int64 `json:"product_id"`
	Available int32 `json:"available"`
}

// StockStore defines the interface for inventory storage operations
type StockStore interface {
	// CurrentStock returns the available quantity for a product.
	// found is false when the product is not in the catalog.
	CurrentStock(ctx context.Context, productID int64) (qty int32, found bool, err error)

	// SetStock sets the stock level for a product (used for initialization and restocks)
	SetStock(ctx context.Context, productID int64, quantity int32) error

	// Deduct subtracts the committed order quantities from stock and
	// returns any overcommits it produced
	Deduct(ctx context.Context, deductions map[int64]int32) ([]Overcommit, error)
}
