package events

import (
	"context"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/inventory"
)

// Publisher feeds the activity log. Publishing is best-effort:
// implementations log failures and never fail the calling operation.
type Publisher interface {
	OrderCreated(ctx context.Context, order *domain.Order)
	OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus)
	InventoryOvercommit(ctx context.Context, orderID string, overcommits []inventory.Overcommit)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *domain.Order) {}

func (NopPublisher) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) {}

func (NopPublisher) InventoryOvercommit(context.Context, string, []inventory.Overcommit) {}
