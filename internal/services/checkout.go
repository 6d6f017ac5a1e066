package service

import (
	"context"

	"storefront/internal/checkout"
	appErrors "storefront/internal/errors"
	"storefront/internal/models"
)

// CheckoutService resolves the live cart into a consistent snapshot and
// hands it to the submitter.
type CheckoutService struct {
	cart      *CartService
	submitter *checkout.Submitter
}

func NewCheckoutService(cart *CartService, submitter *checkout.Submitter) *CheckoutService {
	return &CheckoutService{cart: cart, submitter: submitter}
}

func (s *CheckoutService) Submit(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	billing := models.BillingDetails{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}

	view, err := s.cart.ViewCart(ctx)
	if err != nil {
		return nil, appErrors.InternalError("Failed to resolve cart for checkout").WithError(err)
	}

	if err := s.submitter.Submit(ctx, billing, view.Items); err != nil {
		return nil, err
	}

	return &models.CheckoutResponse{
		OrderedItems: len(view.Items),
		Subtotal:     view.Subtotal,
	}, nil
}

func (s *CheckoutService) State() checkout.State {
	return s.submitter.State()
}
