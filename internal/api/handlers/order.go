package handlers

import (
	"net/http"

	"storefront/internal/api/middleware"
	service "storefront/internal/services"
	"storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders returns the order history for display.
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		records, err := h.orderService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to fetch order history", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, records)
	}
}
