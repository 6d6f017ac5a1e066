package resolver_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/models"
	"storefront/internal/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves products from a map and fails every other id.
type fakeFetcher struct {
	mu       sync.Mutex
	products map[string]models.Product
	calls    []string
}

func (f *fakeFetcher) Product(_ context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	product, ok := f.products[id]
	if !ok {
		return nil, errors.New("product fetch failed")
	}

	return &product, nil
}

func product(id string, amount float64) models.Product {
	return models.Product{
		ID:    models.FlexID(id),
		Name:  "Product " + id,
		Price: models.Money{Amount: amount, Currency: "USD"},
	}
}

func byID(items []models.CartItem) map[string]models.CartItem {
	out := make(map[string]models.CartItem, len(items))
	for _, item := range items {
		out[item.ID.String()] = item
	}

	return out
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates every resolvable line", func(t *testing.T) {
		// Arrange
		fetcher := &fakeFetcher{products: map[string]models.Product{
			"1": product("1", 10.00),
			"2": product("2", 5.50),
		}}
		r := resolver.New(fetcher)

		// Act
		items := r.Resolve(ctx, models.CartMapping{"1": 2, "2": 1})

		// Assert
		require.Len(t, items, 2)
		indexed := byID(items)
		assert.Equal(t, 2, indexed["1"].Quantity)
		assert.Equal(t, 1, indexed["2"].Quantity)
		assert.Equal(t, 10.00, indexed["1"].Price.Amount)
	})

	t.Run("one failing id never aborts the others", func(t *testing.T) {
		// Arrange: fetch(2) fails
		fetcher := &fakeFetcher{products: map[string]models.Product{
			"1": product("1", 10.00),
			"3": product("3", 3.00),
		}}
		r := resolver.New(fetcher)

		// Act
		items := r.Resolve(ctx, models.CartMapping{"1": 1, "2": 4, "3": 2})

		// Assert: result set is exactly {1, 3}
		indexed := byID(items)
		require.Len(t, indexed, 2)
		assert.Contains(t, indexed, "1")
		assert.Contains(t, indexed, "3")
		assert.NotContains(t, indexed, "2")

		// Every id was attempted regardless of the failure.
		assert.ElementsMatch(t, []string{"1", "2", "3"}, fetcher.calls)
	})

	t.Run("quantities are copied exactly from the mapping", func(t *testing.T) {
		fetcher := &fakeFetcher{products: map[string]models.Product{
			"9": product("9", 1.00),
		}}
		r := resolver.New(fetcher)

		items := r.Resolve(ctx, models.CartMapping{"9": 7})

		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Quantity)
	})

	t.Run("empty mapping resolves to an empty list", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		r := resolver.New(fetcher)

		items := r.Resolve(ctx, models.CartMapping{})

		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Empty(t, fetcher.calls)
	})
}
