package stock

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// CatalogStock is the live-inventory lookup capability supplied by the
// catalog collaborator. found is false for products absent from the
// catalog, which reconciliation reports as a NotFound issue.
type CatalogStock interface {
	CurrentStock(ctx context.Context, productID int64) (qty int32, found bool, err error)
}

type stockLevel struct {
	qty   int32
	found bool
}

// BreakerClient wraps a CatalogStock in a circuit breaker so a
// misbehaving catalog fails checkout fast instead of tying up requests.
type BreakerClient struct {
	catalog CatalogStock
	cb      *gobreaker.CircuitBreaker[stockLevel]
}

func NewBreakerClient(catalog CatalogStock) *BreakerClient {
	settings := gobreaker.Settings{
		Name:    "catalog-stock",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerClient{
		catalog: catalog,
		cb:      gobreaker.NewCircuitBreaker[stockLevel](settings),
	}
}

func (c *BreakerClient) CurrentStock(ctx context.Context, productID int64) (int32, bool, error) {
	level, err := c.cb.Execute(func() (stockLevel, error) {
		qty, found, err := c.catalog.CurrentStock(ctx, productID)
		if err != nil {
			return stockLevel{}, err
		}
		return stockLevel{qty: qty, found: found}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return level.qty, level.found, nil
}
