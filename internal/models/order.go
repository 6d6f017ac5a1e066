package models

import "time"

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPending   OrderStatus = "pending"
)

// BillingDetails is the user-entered checkout form. All three fields are
// required before a submission is attempted.
type BillingDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

// OrderLine is one product inside an order payload, frozen at submission time.
type OrderLine struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Money     `json:"price"`
	Images      ImageList `json:"images,omitempty"`
	Quantity    int       `json:"quantity"`
}

// OrderPayload is the snapshot handed to the order-creation boundary.
// It is built once per submission and never mutated afterwards.
type OrderPayload struct {
	User     BillingDetails `json:"user"`
	Products []OrderLine    `json:"products"`
}

// OrderCart is the priced cart embedded in a server-owned order record.
type OrderCart struct {
	Items    []OrderLine `json:"items"`
	Tax      Money       `json:"tax"`
	Subtotal Money       `json:"subtotal"`
	Total    Money       `json:"total"`
}

// OrderRecord is owned by the order service; the storefront only reads it.
type OrderRecord struct {
	ID        string         `json:"id"`
	Status    OrderStatus    `json:"status"`
	User      BillingDetails `json:"user"`
	Cart      OrderCart      `json:"cart"`
	Timestamp time.Time      `json:"timestamp"`
}

type CheckoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

type CheckoutResponse struct {
	OrderedItems int   `json:"ordered_items"`
	Subtotal     Money `json:"subtotal"`
}
