package domain

import "github.com/shopspring/decimal"

// CartTotals is derived from a set of lines, never stored on its own.
type CartTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Total          decimal.Decimal `json:"total"`
	ItemCount      int32           `json:"item_count"`
}
