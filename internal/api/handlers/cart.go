package handlers

import (
	"net/http"

	"storefront/internal/api/middleware"
	appErrors "storefront/internal/errors"
	"storefront/internal/models"
	service "storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart returns the projected cart: hydrated items plus subtotal.
// Lines whose product cannot be fetched right now are simply absent.
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		view, err := h.cartService.ViewCart(r.Context())
		if err != nil {
			logger.Error("failed to build cart view", "error", err.Error())
			response.Error(w, appErrors.InternalError("Failed to load cart"))

			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// AddItem increments the quantity of a product by one.
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddItemRequest
		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, req) {
			return
		}

		h.cartService.AddItem(r.Context(), req.ProductID)

		middleware.LoggerFromContext(r.Context()).Info("cart item added",
			"product_id", req.ProductID)

		response.Success(w, http.StatusOK, nil)
	}
}

// UpdateQuantity sets the quantity of a line already in the cart.
// Quantities below 1 are clamped to 1; there is no path to zero here.
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, appErrors.BadRequestError("Product id is required"))

			return
		}

		var req models.UpdateQuantityRequest
		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, req) {
			return
		}

		h.cartService.UpdateQuantity(r.Context(), productID, req.Quantity)

		response.Success(w, http.StatusOK, nil)
	}
}

// RemoveItem deletes a line from the cart entirely.
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, appErrors.BadRequestError("Product id is required"))

			return
		}

		h.cartService.RemoveItem(r.Context(), productID)

		middleware.LoggerFromContext(r.Context()).Info("cart item removed",
			"product_id", productID)

		response.Success(w, http.StatusOK, nil)
	}
}
