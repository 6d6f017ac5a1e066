package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/cartstore"
	"storefront/internal/models"
	"storefront/internal/resolver"
	service "storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(_ context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, value)
}

func (m *memStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.data[key] = raw

	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)

	return nil
}

func (m *memStore) Close() error { return nil }

// catalogFake serves products from a map and can run a hook on each fetch.
type catalogFake struct {
	mu       sync.Mutex
	products map[string]models.Product
	fetches  int
	onFetch  func()
}

func (c *catalogFake) Product(_ context.Context, id string) (*models.Product, error) {
	c.mu.Lock()
	c.fetches++
	hook := c.onFetch
	c.mu.Unlock()

	if hook != nil {
		hook()
	}

	product, ok := c.products[id]
	if !ok {
		return nil, errors.New("product fetch failed")
	}

	return &product, nil
}

func (c *catalogFake) fetchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fetches
}

func product(id string, amount float64) models.Product {
	return models.Product{
		ID:    models.FlexID(id),
		Name:  "Product " + id,
		Price: models.Money{Amount: amount, Currency: "USD"},
	}
}

func newService(catalog *catalogFake) (*service.CartService, *cartstore.Store) {
	store := cartstore.New(newMemStore(), "cart", 0)

	return service.NewCartService(store, resolver.New(catalog)), store
}

func TestViewCart(t *testing.T) {
	ctx := context.Background()

	t.Run("projects items, units and subtotal", func(t *testing.T) {
		// Arrange
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
			"2": product("2", 5.50),
		}}
		svc, _ := newService(catalog)
		svc.AddItem(ctx, "1")
		svc.AddItem(ctx, "1")
		svc.AddItem(ctx, "2")

		// Act
		view, err := svc.ViewCart(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		assert.Equal(t, 3, view.Units)
		assert.InDelta(t, 25.50, view.Subtotal.Amount, 1e-9)
		assert.Equal(t, "USD", view.Subtotal.Currency)
	})

	t.Run("unresolvable line is absent from the view", func(t *testing.T) {
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
		}}
		svc, _ := newService(catalog)
		svc.AddItem(ctx, "1")
		svc.AddItem(ctx, "gone")

		view, err := svc.ViewCart(ctx)

		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, models.FlexID("1"), view.Items[0].ID)
		// Units still count the raw mapping, resolvable or not.
		assert.Equal(t, 2, view.Units)
		assert.InDelta(t, 10.00, view.Subtotal.Amount, 1e-9)
	})

	t.Run("empty cart yields an empty view", func(t *testing.T) {
		svc, _ := newService(&catalogFake{})

		view, err := svc.ViewCart(ctx)

		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Zero(t, view.Units)
		assert.Zero(t, view.Subtotal.Amount)
	})

	t.Run("resolution started before a mutation is discarded and re-run", func(t *testing.T) {
		// Arrange: the first fetch mutates the cart mid-resolution, so the
		// first pass is stale by the time it joins.
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
			"2": product("2", 4.00),
		}}
		svc, store := newService(catalog)
		svc.AddItem(ctx, "1")

		var once sync.Once

		catalog.onFetch = func() {
			once.Do(func() { store.Add(ctx, "2") })
		}

		// Act
		view, err := svc.ViewCart(ctx)

		// Assert: the served view reflects the mutation, never the stale pass
		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		assert.Equal(t, 2, view.Units)
		assert.InDelta(t, 14.00, view.Subtotal.Amount, 1e-9)
		// First pass fetched one id, the fresh pass fetched both.
		assert.Equal(t, 3, catalog.fetchCount())
	})

	t.Run("retries are bounded when the cart never settles", func(t *testing.T) {
		// Arrange: every fetch mutates the cart, so no pass is ever clean.
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
		}}
		svc, store := newService(catalog)
		svc.AddItem(ctx, "1")

		catalog.onFetch = func() { store.Add(ctx, "1") }

		// Act
		view, err := svc.ViewCart(ctx)

		// Assert: the last resolution is served instead of looping forever
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
	})

	t.Run("cancelled context aborts the view", func(t *testing.T) {
		catalog := &catalogFake{products: map[string]models.Product{
			"1": product("1", 10.00),
		}}
		svc, _ := newService(catalog)
		svc.AddItem(ctx, "1")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		view, err := svc.ViewCart(cancelled)

		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, view)
	})
}

func TestCartMutations(t *testing.T) {
	ctx := context.Background()

	catalog := &catalogFake{products: map[string]models.Product{
		"1": product("1", 10.00),
	}}
	svc, store := newService(catalog)

	// Add twice, overwrite, clamp, remove.
	svc.AddItem(ctx, "1")
	svc.AddItem(ctx, "1")
	assert.Equal(t, models.CartMapping{"1": 2}, store.Snapshot())

	svc.UpdateQuantity(ctx, "1", 5)
	assert.Equal(t, models.CartMapping{"1": 5}, store.Snapshot())

	svc.UpdateQuantity(ctx, "1", 0)
	assert.Equal(t, models.CartMapping{"1": 1}, store.Snapshot())

	svc.UpdateQuantity(ctx, "missing", 4)
	assert.Equal(t, models.CartMapping{"1": 1}, store.Snapshot())

	svc.RemoveItem(ctx, "1")
	assert.Empty(t, store.Snapshot())
}
