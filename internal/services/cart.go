package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"storefront/internal/cartstore"
	"storefront/internal/models"
	"storefront/internal/projection"
	"storefront/internal/resolver"
)

// maxStaleRetries bounds how often a cart view is re-resolved when the
// mapping mutates while product fetches are in flight.
const maxStaleRetries = 3

// CartService coordinates the cart store, the product detail resolver and
// the projection into the view handed to UI surfaces.
//
// Resolution results are tagged with the store generation they started
// from. A result that joins after a newer mutation is discarded and
// resolution re-runs, so a stale fetch can never overwrite a fresher cart
// with outdated content.
type CartService struct {
	store    *cartstore.Store
	resolver *resolver.Resolver

	generation atomic.Uint64
}

func NewCartService(store *cartstore.Store, res *resolver.Resolver) *CartService {
	s := &CartService{
		store:    store,
		resolver: res,
	}

	store.Subscribe(func(models.CartMapping) {
		s.generation.Add(1)
	})

	return s
}

// ViewCart resolves the current mapping into the projected item list plus
// subtotal. Unresolvable ids are absent from the view by design.
func (s *CartService) ViewCart(ctx context.Context) (*models.CartView, error) {
	var (
		mapping models.CartMapping
		items   []models.CartItem
	)

	for attempt := 0; ; attempt++ {
		generation := s.generation.Load()
		mapping = s.store.Snapshot()
		items = s.resolver.Resolve(ctx, mapping)

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.generation.Load() == generation {
			break
		}

		if attempt == maxStaleRetries {
			slog.Warn("cart still mutating after retries, serving last resolution",
				slog.Int("attempts", attempt+1))

			break
		}

		slog.Debug("discarding stale cart resolution", slog.Uint64("generation", generation))
	}

	projected := projection.Project(mapping, items)

	return &models.CartView{
		Items:    projected,
		Subtotal: projection.Subtotal(projected),
		Units:    mapping.Units(),
	}, nil
}

// AddItem increments the quantity for the product, creating the line at 1.
func (s *CartService) AddItem(ctx context.Context, productID string) {
	s.store.Add(ctx, productID)
}

// UpdateQuantity overwrites the quantity for an existing line; quantities
// below 1 are clamped to 1, and unknown ids are ignored.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.store.SetQuantity(ctx, productID, quantity)
}

// RemoveItem deletes the line entirely.
func (s *CartService) RemoveItem(ctx context.Context, productID string) {
	s.store.Remove(ctx, productID)
}
