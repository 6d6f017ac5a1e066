package resolver

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/metrics"
	"storefront/internal/models"
)

// ProductFetcher is the slice of the catalog boundary the resolver needs.
type ProductFetcher interface {
	Product(ctx context.Context, id string) (*models.Product, error)
}

// Resolver turns a cart mapping into hydrated cart items by fetching each
// referenced product independently. One bad id never aborts the others: a
// failed fetch drops that line from the result and is logged with the
// offending id.
type Resolver struct {
	fetcher ProductFetcher
}

func New(fetcher ProductFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fans out one fetch per cart line and joins on all of them.
// Output order is unspecified; consumers key off the embedded product id.
// The quantity on each item is exactly what the mapping recorded.
func (r *Resolver) Resolve(ctx context.Context, mapping models.CartMapping) []models.CartItem {
	if len(mapping) == 0 {
		return []models.CartItem{}
	}

	var wg sync.WaitGroup

	results := make(chan models.CartItem, len(mapping))

	for id, quantity := range mapping {
		wg.Add(1)

		go func(id string, quantity int) {
			defer wg.Done()

			product, err := r.fetcher.Product(ctx, id)
			if err != nil {
				slog.Warn("dropping unresolvable cart item",
					slog.String("product_id", id),
					slog.String("error", err.Error()))
				metrics.UnresolvedCartItems.Inc()

				return
			}

			results <- models.CartItem{Product: *product, Quantity: quantity}
		}(id, quantity)
	}

	wg.Wait()
	close(results)

	items := make([]models.CartItem, 0, len(mapping))
	for item := range results {
		items = append(items, item)
	}

	return items
}
