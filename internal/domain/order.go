package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPendingPayment  OrderStatus = "pending_payment"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusDispatched      OrderStatus = "dispatched"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusReturnRequested OrderStatus = "return_requested"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusReturnRequested
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// allowedSources maps each target status to the set of statuses an
// order may occupy when the transition is requested. return_requested
// is handled separately: it is reachable from any non-terminal status.
var allowedSources = map[OrderStatus][]OrderStatus{
	OrderStatusConfirmed:  {OrderStatusPendingPayment},
	OrderStatusDispatched: {OrderStatusConfirmed},
	OrderStatusDelivered:  {OrderStatusDispatched},
	OrderStatusCancelled:  {OrderStatusPendingPayment, OrderStatusConfirmed},
}

// CanTransitionTo reports whether an order in status s may move to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusReturnRequested {
		return !s.IsTerminal()
	}
	for _, src := range allowedSources[target] {
		if s == src {
			return true
		}
	}
	return false
}

// OrderItem is a line snapshotted at checkout. Prices are frozen at
// purchase time and never re-derived from the catalog.
type OrderItem struct {
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Variant            string          `json:"variant,omitempty"`
	Quantity           int32           `json:"quantity"`
	PriceAtPurchase    decimal.Decimal `json:"price_at_purchase"`
	DiscountAtPurchase decimal.Decimal `json:"discount_at_purchase"`
}

type Order struct {
	ID            uuid.UUID   `json:"id"`
	UserID        string      `json:"user_id"`
	AddressID     string      `json:"address_id"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
	Status        OrderStatus `json:"status"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	TotalAmount    decimal.Decimal `json:"total_amount"`

	TrackingNumber string `json:"tracking_number,omitempty"`
	CancelReason   string `json:"cancel_reason,omitempty"`
	ReturnReason   string `json:"return_reason,omitempty"`

	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	DispatchedAt      *time.Time `json:"dispatched_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	ReturnRequestedAt *time.Time `json:"return_requested_at,omitempty"`
}

// TransitionContext carries the metadata a status change needs.
type TransitionContext struct {
	PaymentConfirmed bool
	TrackingNumber   string
	CancelReason     string
	ReturnReason     string
}

// Transition moves the order to target, enforcing the allowed-source
// table and stamping the matching timestamp. On any error the order is
// left untouched.
func (o *Order) Transition(target OrderStatus, tctx TransitionContext) error {
	if !o.Status.CanTransitionTo(target) {
		return &InvalidTransitionError{From: o.Status, To: target}
	}

	switch target {
	case OrderStatusCancelled:
		if tctx.CancelReason == "" {
			return &ValidationError{Field: "cancel_reason", Message: "is required"}
		}
	case OrderStatusReturnRequested:
		if tctx.ReturnReason == "" {
			return &ValidationError{Field: "return_reason", Message: "is required"}
		}
	}

	now := time.Now()
	switch target {
	case OrderStatusConfirmed:
		if tctx.PaymentConfirmed {
			o.PaidAt = &now
		}
	case OrderStatusDispatched:
		o.DispatchedAt = &now
		if tctx.TrackingNumber != "" {
			o.TrackingNumber = tctx.TrackingNumber
		}
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
		o.CancelReason = tctx.CancelReason
	case OrderStatusReturnRequested:
		o.ReturnRequestedAt = &now
		o.ReturnReason = tctx.ReturnReason
	}

	o.Status = target
	o.UpdatedAt = now
	return nil
}
