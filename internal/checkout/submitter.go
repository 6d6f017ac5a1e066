package checkout

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/cartstore"
	appErrors "storefront/internal/errors"
	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// OrderCreator is the order-creation boundary.
type OrderCreator interface {
	CreateOrder(ctx context.Context, payload *models.OrderPayload) error
}

// Submitter drives a checkout attempt through
// Idle -> Submitting -> {Succeeded, Failed}. On success the cart store is
// cleared and the empty mapping persisted; on failure the cart is left
// untouched and the error is retry-eligible. Only one submission may be in
// flight at a time.
type Submitter struct {
	orders    OrderCreator
	cart      *cartstore.Store
	validate  *validator.Validate
	sanitizer *bluemonday.Policy

	mu    sync.Mutex
	state State
}

func NewSubmitter(orders OrderCreator, cart *cartstore.Store) *Submitter {
	return &Submitter{
		orders:    orders,
		cart:      cart,
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
		state:     StateIdle,
	}
}

// State reports the outcome of the last attempt, or StateSubmitting while
// one is in flight.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Submit validates the billing details, freezes the projected items into an
// order payload and hands it to the order boundary. The payload is a
// snapshot: cart mutations after this point are not reflected in flight.
func (s *Submitter) Submit(ctx context.Context, billing models.BillingDetails, items []models.CartItem) error {
	if err := s.validate.Struct(billing); err != nil {
		metrics.CheckoutSubmissions.WithLabelValues("rejected").Inc()

		return appErrors.ValidationError("Billing name, email and address are required").WithError(err)
	}

	if len(items) == 0 {
		metrics.CheckoutSubmissions.WithLabelValues("rejected").Inc()

		return appErrors.BadRequestError("Cannot submit an order for an empty cart")
	}

	s.mu.Lock()

	if s.state == StateSubmitting {
		s.mu.Unlock()
		metrics.CheckoutSubmissions.WithLabelValues("rejected").Inc()

		return appErrors.ConflictError("A checkout submission is already in flight")
	}

	s.state = StateSubmitting
	s.mu.Unlock()

	payload := s.buildPayload(billing, items)

	if err := s.orders.CreateOrder(ctx, payload); err != nil {
		s.setState(StateFailed)
		metrics.CheckoutSubmissions.WithLabelValues("failed").Inc()

		slog.Error("checkout submission failed",
			slog.Int("lines", len(payload.Products)),
			slog.String("error", err.Error()))

		return appErrors.SubmissionFailedError("Order submission failed, please try again").WithError(err)
	}

	s.cart.Clear(ctx)
	s.setState(StateSucceeded)
	metrics.CheckoutSubmissions.WithLabelValues("accepted").Inc()

	slog.Info("checkout submitted",
		slog.Int("lines", len(payload.Products)))

	return nil
}

// buildPayload deep-copies every line so later mutations of the projection
// cannot leak into an in-flight submission. Free-text billing fields are
// stripped of any markup before they leave the service.
func (s *Submitter) buildPayload(billing models.BillingDetails, items []models.CartItem) *models.OrderPayload {
	billing.Name = s.sanitizer.Sanitize(billing.Name)
	billing.Address = s.sanitizer.Sanitize(billing.Address)

	lines := make([]models.OrderLine, 0, len(items))

	for _, item := range items {
		images := make(models.ImageList, len(item.Images))
		copy(images, item.Images)

		lines = append(lines, models.OrderLine{
			ID:          item.ID.String(),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Images:      images,
			Quantity:    item.Quantity,
		})
	}

	return &models.OrderPayload{User: billing, Products: lines}
}

func (s *Submitter) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}
