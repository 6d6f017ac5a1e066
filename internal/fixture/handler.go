package fixture

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"storefront/internal/api/middleware"
	appErrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/utils"
	"storefront/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Handler serves the catalog and order boundaries from in-memory data:
// the product/category fixture plus an order book appended to by checkout.
// It implements the collaborator contracts the cart pipeline consumes.
type Handler struct {
	validator *validator.Validate
	taxRate   float64

	mu     sync.Mutex
	orders []models.OrderRecord
}

func NewHandler(taxRate float64) *Handler {
	return &Handler{
		validator: validator.New(),
		taxRate:   taxRate,
	}
}

// ListProducts handles GET /products?categories=c1,c2.
func (h *Handler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matched := products

		if param := r.URL.Query().Get("categories"); param != "" {
			wanted := strings.Split(param, ",")
			matched = make([]models.Product, 0, len(products))

			for _, product := range products {
				if slices.ContainsFunc(wanted, func(c string) bool {
					return slices.Contains(product.Categories, c)
				}) {
					matched = append(matched, product)
				}
			}
		}

		response.SuccessWithMessage(w, http.StatusOK,
			fmt.Sprintf("Found %d product item(s).", len(matched)), matched)
	}
}

// GetProduct handles GET /products/{id}.
func (h *Handler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		for _, product := range products {
			if product.ID.String() == id {
				response.Success(w, http.StatusOK, product)

				return
			}
		}

		response.Error(w, appErrors.NotFoundError("Product not found"))
	}
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, categories)
	}
}

// GetCategory handles GET /categories/{id}.
func (h *Handler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		for _, category := range categories {
			if category.ID == id {
				response.Success(w, http.StatusOK, category)

				return
			}
		}

		response.Error(w, appErrors.NotFoundError("Category not found"))
	}
}

// Checkout handles POST /checkout: prices the submitted payload and appends
// an order record to the book.
func (h *Handler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var payload models.OrderPayload
		if err := utils.DecodeJSONBody(w, r, &payload); err != nil {
			return
		}

		if err := h.validator.Struct(payload.User); err != nil {
			response.Error(w, appErrors.ValidationError("Order payload has incomplete billing details").WithError(err))

			return
		}

		if len(payload.Products) == 0 {
			response.Error(w, appErrors.BadRequestError("Order payload has no products"))

			return
		}

		record := h.priceOrder(&payload)

		h.mu.Lock()
		h.orders = append(h.orders, *record)
		h.mu.Unlock()

		logger.Info("order recorded",
			"order_id", record.ID,
			"lines", len(record.Cart.Items),
			"total", models.FormatAmount(record.Cart.Total.Amount))

		response.Success(w, http.StatusCreated, record)
	}
}

// ListOrders handles GET /orders.
func (h *Handler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		records := make([]models.OrderRecord, len(h.orders))
		copy(records, h.orders)
		h.mu.Unlock()

		response.Success(w, http.StatusOK, records)
	}
}

func (h *Handler) priceOrder(payload *models.OrderPayload) *models.OrderRecord {
	var subtotal float64

	var currency string

	for _, line := range payload.Products {
		if currency == "" {
			currency = line.Price.Currency
		}

		subtotal += float64(line.Quantity) * line.Price.Amount
	}

	tax := subtotal * h.taxRate

	return &models.OrderRecord{
		ID:     uuid.NewString(),
		Status: models.OrderStatusConfirmed,
		User:   payload.User,
		Cart: models.OrderCart{
			Items:    payload.Products,
			Tax:      models.Money{Amount: tax, Currency: currency},
			Subtotal: models.Money{Amount: subtotal, Currency: currency},
			Total:    models.Money{Amount: subtotal + tax, Currency: currency},
		},
		Timestamp: time.Now().UTC(),
	}
}
