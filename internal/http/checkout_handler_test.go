package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sevasanjeevani/store/internal/cart"
	"github.com/sevasanjeevani/store/internal/checkout"
	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/events"
	"github.com/sevasanjeevani/store/internal/inventory"
	"github.com/sevasanjeevani/store/internal/pricing"
	"github.com/sevasanjeevani/store/internal/stock"
)

// orderRepoMock captures created orders
type orderRepoMock struct {
	created *domain.Order
}

func (m *orderRepoMock) CreateOrder(_ context.Context, order *domain.Order) error {
	m.created = order
	return nil
}

func newCheckoutHandler(t *testing.T, stockLevels map[int64]int32) (*CheckoutHandler, *cart.Service, *orderRepoMock) {
	t.Helper()

	carts := cart.NewService(cart.NewMemoryStore(), pricing.DefaultConfig())
	inv := inventory.NewMemoryStore()
	for id, qty := range stockLevels {
		if err := inv.SetStock(context.Background(), id, qty); err != nil {
			t.Fatalf("set stock: %v", err)
		}
	}
	repo := &orderRepoMock{}

	orchestrator := checkout.NewOrchestrator(
		carts,
		stock.NewReconciler(inv),
		inv,
		repo,
		events.NopPublisher{},
		pricing.DefaultConfig(),
		checkout.Config{},
	)
	return NewCheckoutHandler(orchestrator, 5*time.Second), carts, repo
}

func checkoutBody() *bytes.Buffer {
	body, _ := json.Marshal(CheckoutRequestDTO{AddressID: "addr-1", PaymentMethod: "cod"})
	return bytes.NewBuffer(body)
}

func TestCheckout_Success(t *testing.T) {
	handler, carts, repo := newCheckoutHandler(t, map[int64]int32{1: 100})

	_, err := carts.AddItem(context.Background(), "user-1", domain.LineItem{
		ProductID:   1,
		ProductName: "Chyawanprash 500g",
		UnitPrice:   decimal.NewFromInt(499),
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout", checkoutBody()))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var order domain.Order
	if err := json.Unmarshal(recorder.Body.Bytes(), &order); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if order.Status != domain.OrderStatusPendingPayment {
		t.Errorf("expected pending_payment, got %s", order.Status)
	}
	if order.TotalAmount.String() != "647.82" {
		t.Errorf("expected total 647.82, got %s", order.TotalAmount.String())
	}
	if repo.created == nil {
		t.Fatal("expected order to be persisted")
	}

	// cart must be cleared after checkout
	current, _ := carts.GetCart(context.Background(), "user-1")
	if !current.IsEmpty() {
		t.Errorf("expected cart cleared, got %d lines", len(current.Items))
	}
}

func TestCheckout_OutOfStock(t *testing.T) {
	handler, carts, repo := newCheckoutHandler(t, map[int64]int32{1: 5})

	_, err := carts.AddItem(context.Background(), "user-1", domain.LineItem{
		ProductID:   1,
		ProductName: "Ashwagandha",
		UnitPrice:   decimal.NewFromInt(250),
		Quantity:    10,
	})
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout", checkoutBody()))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d: %s", http.StatusConflict, recorder.Code, recorder.Body.String())
	}
	if repo.created != nil {
		t.Error("expected no order to be created")
	}

	var resp ErrorResponse
	_ = json.Unmarshal(recorder.Body.Bytes(), &resp)
	if resp.Code != "out_of_stock" {
		t.Errorf("expected code out_of_stock, got %q", resp.Code)
	}
	if resp.Details == nil {
		t.Error("expected issue details in response")
	}
}

func TestCheckout_MissingAddress(t *testing.T) {
	handler, _, _ := newCheckoutHandler(t, nil)

	body, _ := json.Marshal(CheckoutRequestDTO{PaymentMethod: "cod"})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/api/v1/checkout", bytes.NewBuffer(body)))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCheckout_Unauthorized(t *testing.T) {
	handler, _, _ := newCheckoutHandler(t, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", checkoutBody())

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}
