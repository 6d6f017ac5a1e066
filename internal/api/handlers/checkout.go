package handlers

import (
	"net/http"

	"storefront/internal/api/middleware"
	"storefront/internal/models"
	service "storefront/internal/services"
	"storefront/internal/utils"
	"storefront/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

// Submit validates the billing details and submits the current cart as an
// order. On success the cart has been cleared; on failure it is untouched
// and the client may retry.
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, req) {
			return
		}

		result, err := h.checkoutService.Submit(r.Context(), &req)
		if err != nil {
			logger.Warn("checkout submission not accepted", "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("checkout accepted",
			"ordered_items", result.OrderedItems,
			"subtotal", models.FormatAmount(result.Subtotal.Amount))

		response.Success(w, http.StatusCreated, result)
	}
}
