package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/api/handlers"
	"storefront/internal/checkout"
	"storefront/internal/models"
	service "storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderCreatorFake struct {
	err      error
	payloads []*models.OrderPayload
}

func (o *orderCreatorFake) CreateOrder(_ context.Context, payload *models.OrderPayload) error {
	o.payloads = append(o.payloads, payload)

	return o.err
}

func newCheckoutMux(catalog *catalogFake, creator *orderCreatorFake) (*http.ServeMux, *service.CartService) {
	cartService, store := newCartService(catalog)
	submitter := checkout.NewSubmitter(creator, store)
	checkoutService := service.NewCheckoutService(cartService, submitter)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /cart/checkout", handlers.NewCheckoutHandler(checkoutService).Submit())

	return mux, cartService
}

func TestCheckoutSubmit(t *testing.T) {
	ctx := context.Background()

	billingBody := []byte(`{"name":"Jo Doe","email":"jo@example.com","address":"1 Main St"}`)

	t.Run("Success - Order Accepted And Cart Cleared", func(t *testing.T) {
		// Arrange
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
			"2": product("2", 5.50),
		}}
		creator := &orderCreatorFake{}
		mux, cartService := newCheckoutMux(catalog, creator)
		cartService.AddItem(ctx, "1")
		cartService.AddItem(ctx, "1")
		cartService.AddItem(ctx, "2")

		// Act
		recorder, env := do(t, mux, http.MethodPost, "/cart/checkout", billingBody)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
		require.True(t, env.Success)

		var result models.CheckoutResponse
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, 2, result.OrderedItems)
		assert.InDelta(t, 25.50, result.Subtotal.Amount, 1e-9)

		require.Len(t, creator.payloads, 1)
		assert.Equal(t, "jo@example.com", creator.payloads[0].User.Email)

		view, err := cartService.ViewCart(ctx)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("Failure - Invalid Billing Details Never Reach The Boundary", func(t *testing.T) {
		creator := &orderCreatorFake{}
		mux, cartService := newCheckoutMux(&catalogFake{}, creator)
		cartService.AddItem(ctx, "1")

		recorder, env := do(t, mux, http.MethodPost, "/cart/checkout",
			[]byte(`{"name":"Jo Doe","email":"not-an-email","address":"1 Main St"}`))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Empty(t, creator.payloads)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		creator := &orderCreatorFake{}
		mux, _ := newCheckoutMux(&catalogFake{}, creator)

		recorder, env := do(t, mux, http.MethodPost, "/cart/checkout", billingBody)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})

	t.Run("Failure - Boundary Error Keeps The Cart", func(t *testing.T) {
		// Arrange
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
		}}
		creator := &orderCreatorFake{err: errors.New("order service unavailable")}
		mux, cartService := newCheckoutMux(catalog, creator)
		cartService.AddItem(ctx, "1")

		// Act
		recorder, env := do(t, mux, http.MethodPost, "/cart/checkout", billingBody)

		// Assert: retry-eligible failure, cart intact
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "SUBMISSION_FAILED", env.Error.Code)

		view, err := cartService.ViewCart(ctx)
		require.NoError(t, err)
		assert.Len(t, view.Items, 1)
	})
}
