package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sevasanjeevani/store/internal/cart"
	"github.com/sevasanjeevani/store/internal/domain"
)

type CartHandler struct {
	carts   *cart.Service
	timeout time.Duration
}

func NewCartHandler(carts *cart.Service, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Variant         string          `json:"variant,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	MRP             decimal.Decimal `json:"mrp"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Quantity        int32           `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Variant  string `json:"variant,omitempty"`
	Quantity int32  `json:"quantity"`
}

type CartResponseDTO struct {
	Cart   *domain.Cart      `json:"cart"`
	Totals domain.CartTotals `json:"totals"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	updated, err := h.carts.AddItem(ctx, userID, domain.LineItem{
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		Variant:         req.Variant,
		UnitPrice:       req.UnitPrice,
		MRP:             req.MRP,
		DiscountPercent: req.DiscountPercent,
		Quantity:        req.Quantity,
	})
	if err != nil {
		handleCartError(w, err)
		return
	}

	h.respondCart(ctx, w, http.StatusCreated, updated)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	current, err := h.carts.GetCart(ctx, userID)
	if err != nil {
		handleCartError(w, err)
		return
	}

	h.respondCart(ctx, w, http.StatusOK, current)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// quantity <= 0 removes the line, matching the aggregate contract
	updated, err := h.carts.UpdateQuantity(ctx, userID, productID, req.Variant, req.Quantity)
	if err != nil {
		handleCartError(w, err)
		return
	}

	h.respondCart(ctx, w, http.StatusOK, updated)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	variant := r.URL.Query().Get("variant")

	updated, err := h.carts.RemoveItem(ctx, userID, productID, variant)
	if err != nil {
		handleCartError(w, err)
		return
	}

	h.respondCart(ctx, w, http.StatusOK, updated)
}

func (h *CartHandler) respondCart(ctx context.Context, w http.ResponseWriter, status int, c *domain.Cart) {
	totals, err := h.carts.Totals(ctx, c.UserID)
	if err != nil {
		handleCartError(w, err)
		return
	}
	respondJSON(w, status, CartResponseDTO{Cart: c, Totals: totals})
}

func handleCartError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, "invalid_line_item", vErr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}
