package checkout

import (
	"context"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/inventory"
	"github.com/sevasanjeevani/store/internal/stock"
)

// MockCarts implements CartAccess for testing
type MockCarts struct {
	Cart     *domain.Cart
	GetErr   error
	ClearErr error
	Cleared  bool
}

func (m *MockCarts) GetCart(context.Context, string) (*domain.Cart, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Cart, nil
}

func (m *MockCarts) ClearCart(context.Context, string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	return nil
}

// MockValidator implements StockValidator for testing
type MockValidator struct {
	Report stock.Report
	Err    error
}

func (m *MockValidator) Validate(context.Context, []domain.LineItem) (stock.Report, error) {
	if m.Err != nil {
		return stock.Report{}, m.Err
	}
	return m.Report, nil
}

// MockDeductor implements StockDeductor for testing
type MockDeductor struct {
	Overcommits []inventory.Overcommit
	Deducted    map[int64]int32 // captures the deductions passed in
}

func (m *MockDeductor) Deduct(_ context.Context, deductions map[int64]int32) ([]inventory.Overcommit, error) {
	m.Deducted = deductions
	return m.Overcommits, nil
}

// MockOrderRepo implements OrderCreator for testing
type MockOrderRepo struct {
	Created   *domain.Order // captures the order passed to CreateOrder
	CreateErr error
}

func (m *MockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = order
	return nil
}

// recordingPublisher captures activity events
type recordingPublisher struct {
	CreatedOrders []string
	Overcommits   []inventory.Overcommit
}

func (r *recordingPublisher) OrderCreated(_ context.Context, order *domain.Order) {
	r.CreatedOrders = append(r.CreatedOrders, order.ID.String())
}

func (r *recordingPublisher) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) {}

func (r *recordingPublisher) InventoryOvercommit(_ context.Context, _ string, overcommits []inventory.Overcommit) {
	r.Overcommits = append(r.Overcommits, overcommits...)
}
