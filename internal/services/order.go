package service

import (
	"context"

	appErrors "storefront/internal/errors"
	"storefront/internal/models"
)

// OrderHistory is the read-only slice of the order boundary.
type OrderHistory interface {
	Orders(ctx context.Context) ([]models.OrderRecord, error)
}

type OrderService struct {
	history OrderHistory
}

func NewOrderService(history OrderHistory) *OrderService {
	return &OrderService{history: history}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.OrderRecord, error) {
	records, err := s.history.Orders(ctx)
	if err != nil {
		return nil, appErrors.UpstreamError("Failed to fetch order history").WithError(err)
	}

	return records, nil
}
