package models

// CartMapping is the persisted shopping cart: product id -> quantity.
// Every stored quantity is >= 1; removal deletes the key rather than
// writing a zero.
type CartMapping map[string]int

// Clone returns a defensive copy so callers can hold a snapshot while
// the live mapping keeps mutating.
func (m CartMapping) Clone() CartMapping {
	out := make(CartMapping, len(m))
	for id, qty := range m {
		out[id] = qty
	}

	return out
}

// Units is the total number of units across all lines, e.g. for a cart badge.
func (m CartMapping) Units() int {
	var n int
	for _, qty := range m {
		n += qty
	}

	return n
}

// CartItem is a hydrated cart line: the catalog product plus the quantity
// recorded in the mapping. Always re-derived, never persisted.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// CartView is the display-ready projection handed to UI surfaces.
type CartView struct {
	Items    []CartItem `json:"items"`
	Subtotal Money      `json:"subtotal"`
	Units    int        `json:"units"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Quantity is deliberately unconstrained: values below 1 are clamped to 1
// by the store, matching the storefront's minus-button behavior.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
