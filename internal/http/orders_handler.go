package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sevasanjeevani/store/internal/domain"
	"github.com/sevasanjeevani/store/internal/orders"
)

type OrdersHandler struct {
	orders  *orders.Service
	timeout time.Duration
}

func NewOrdersHandler(svc *orders.Service, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  svc,
		timeout: timeout,
	}
}

type TransitionRequestDTO struct {
	Status           string `json:"status"`
	PaymentConfirmed bool   `json:"payment_confirmed,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	CancelReason     string `json:"cancel_reason,omitempty"`
	ReturnReason     string `json:"return_reason,omitempty"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	list, err := h.orders.ListOrders(ctx, userID)
	if err != nil {
		handleOrderError(w, err)
		return
	}
	if list == nil {
		list = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		handleOrderError(w, err)
		return
	}
	if order.UserID != userID {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// TransitionOrder services the back-office status buttons. Unlike the
// old admin screens it will not overwrite status freely: the lifecycle
// guard applies here exactly as everywhere else.
func (h *OrdersHandler) TransitionOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	var req TransitionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	target := domain.OrderStatus(req.Status)
	switch target {
	case domain.OrderStatusConfirmed, domain.OrderStatusDispatched, domain.OrderStatusDelivered,
		domain.OrderStatusCancelled, domain.OrderStatusReturnRequested:
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown target status")
		return
	}

	order, err := h.orders.Transition(ctx, orderID, target, domain.TransitionContext{
		PaymentConfirmed: req.PaymentConfirmed,
		TrackingNumber:   req.TrackingNumber,
		CancelReason:     req.CancelReason,
		ReturnReason:     req.ReturnReason,
	})
	if err != nil {
		handleOrderError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func handleOrderError(w http.ResponseWriter, err error) {
	if errors.Is(err, orders.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}

	var tErr *domain.InvalidTransitionError
	if errors.As(err, &tErr) {
		respondErrorWithDetails(w, http.StatusConflict, "invalid_transition", tErr.Error(), map[string]string{
			"from": tErr.From.String(),
			"to":   tErr.To.String(),
		})
		return
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, "invalid_request", vErr.Error())
		return
	}

	respondError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}
