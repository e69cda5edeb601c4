package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/events"
	"github.com/sevasanjeevani/store/internal/inventory"
	"github.com/sevasanjeevani/store/internal/pricing"
	"github.com/sevasanjeevani/store/internal/stock"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// CartAccess is the slice of the cart service checkout needs.
type CartAccess interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// StockValidator reconciles cart lines against live stock.
type StockValidator interface {
	Validate(ctx context.Context, lines []domain.LineItem) (stock.Report, error)
}

// StockDeductor commits quantities after an order is created.
type StockDeductor interface {
	Deduct(ctx context.Context, deductions map[int64]int32) ([]inventory.Overcommit, error)
}

// OrderCreator persists the order draft.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

type Config struct {
	// RejectEmptyCart refuses zero-item checkouts. Off by default for
	// compatibility with existing test flows; production turns it on.
	RejectEmptyCart bool
}

type Request struct {
	AddressID     string
	PaymentMethod string
}

// Orchestrator converts a cart into an order: snapshot, reconcile,
// price, persist, clear.
type Orchestrator struct {
	carts     CartAccess
	validator StockValidator
	deductor  StockDeductor
	repo      OrderCreator
	events    events.Publisher
	pricing   pricing.Config
	cfg       Config
}

func NewOrchestrator(
	carts CartAccess,
	validator StockValidator,
	deductor StockDeductor,
	repo OrderCreator,
	publisher events.Publisher,
	pricingCfg pricing.Config,
	cfg Config,
) *Orchestrator {
	return &Orchestrator{
		carts:     carts,
		validator: validator,
		deductor:  deductor,
		repo:      repo,
		events:    publisher,
		pricing:   pricingCfg,
		cfg:       cfg,
	}
}

// Checkout runs the full flow. Stock is reconciled as the last read
// before the order insert; the remaining race against concurrent
// checkouts surfaces later as an inventory overcommit event, never as
// a failure of the created order.
func (o *Orchestrator) Checkout(ctx context.Context, userID string, req Request) (*domain.Order, error) {
	cart, err := o.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if cart.IsEmpty() && o.cfg.RejectEmptyCart {
		return nil, ErrEmptyCart
	}

	for _, line := range cart.Items {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	report, err := o.validator.Validate(ctx, cart.Items)
	if err != nil {
		return nil, fmt.Errorf("stock reconciliation: %w", err)
	}
	if !report.IsValid() {
		return nil, &stock.OutOfStockError{Issues: report.Issues}
	}

	totals := pricing.ComputeTotals(cart.Items, o.pricing)
	order := snapshotOrder(cart, req, totals)

	if err := o.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The order is the source of truth from here on. Deduction and
	// cart clearing may fail without undoing it.
	o.deductStock(ctx, order)

	if err := o.carts.ClearCart(ctx, userID); err != nil {
		log.Printf("clear cart after checkout of order %s failed: %v", order.ID, err)
	}

	o.events.OrderCreated(ctx, order)
	return order, nil
}

// snapshotOrder freezes prices and discounts at this instant. The
// snapshot is never re-derived from catalog prices afterwards.
func snapshotOrder(cart *domain.Cart, req Request, totals domain.CartTotals) *domain.Order {
	items := make([]domain.OrderItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = domain.OrderItem{
			ProductID:          line.ProductID,
			ProductName:        line.ProductName,
			Variant:            line.Variant,
			Quantity:           line.Quantity,
			PriceAtPurchase:    line.UnitPrice,
			DiscountAtPurchase: line.DiscountPercent,
		}
	}

	now := time.Now()
	return &domain.Order{
		ID:             uuid.New(),
		UserID:         cart.UserID,
		AddressID:      req.AddressID,
		PaymentMethod:  req.PaymentMethod,
		Items:          items,
		Status:         domain.OrderStatusPendingPayment,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		ShippingCost:   totals.ShippingCost,
		TotalAmount:    totals.Total,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (o *Orchestrator) deductStock(ctx context.Context, order *domain.Order) {
	if len(order.Items) == 0 {
		return
	}

	deductions := make(map[int64]int32, len(order.Items))
	for _, item := range order.Items {
		deductions[item.ProductID] += item.Quantity
	}

	overcommits, err := o.deductor.Deduct(ctx, deductions)
	if err != nil {
		log.Printf("stock deduction for order %s failed: %v", order.ID, err)
		return
	}
	if len(overcommits) > 0 {
		log.Printf("inventory overcommit on order %s: %v", order.ID, overcommits)
		o.events.InventoryOvercommit(ctx, order.ID.String(), overcommits)
	}
}
