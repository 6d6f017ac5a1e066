package cartstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/kv"
	"storefront/internal/models"
)

// Store is the single source of truth for cart contents. It owns the
// id -> quantity mapping in memory and mirrors every mutation to the durable
// key-value boundary before returning. UI surfaces read through the store
// instead of caching their own copy; subscribers are notified after each
// mutation so derived views know to re-read.
type Store struct {
	mu    sync.Mutex
	items models.CartMapping
	subs  []func(models.CartMapping)

	storage kv.Store
	key     string
	ttl     time.Duration
}

func New(storage kv.Store, key string, ttl time.Duration) *Store {
	if key == "" {
		key = kv.CartKey
	}

	return &Store{
		items:   make(models.CartMapping),
		storage: storage,
		key:     key,
		ttl:     ttl,
	}
}

// Load reads the persisted mapping at startup. Absent or corrupt data fails
// soft to an empty cart; the caller is never handed an error for it.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var persisted models.CartMapping

	found, err := s.storage.Get(ctx, s.key, &persisted)
	if err != nil {
		slog.Warn("persisted cart is unreadable, starting empty",
			slog.String("key", s.key),
			slog.String("error", err.Error()))

		s.items = make(models.CartMapping)

		return
	}

	if !found {
		s.items = make(models.CartMapping)

		return
	}

	// Sanitize: a quantity below 1 means the entry should not exist.
	s.items = make(models.CartMapping, len(persisted))

	for id, qty := range persisted {
		if qty < 1 {
			slog.Warn("dropping persisted cart entry with invalid quantity",
				slog.String("product_id", id),
				slog.Int("quantity", qty))

			continue
		}

		s.items[id] = qty
	}
}

// Add increments the quantity for productID by one, creating the entry at 1.
func (s *Store) Add(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[productID]++
	s.persistLocked(ctx)
	s.notifyLocked()
}

// SetQuantity overwrites the quantity for an existing entry, clamping to a
// minimum of 1. Ids not already in the cart are ignored; there is no path
// to zero here, removal is a distinct operation.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[productID]; !exists {
		return
	}

	if quantity < 1 {
		quantity = 1
	}

	s.items[productID] = quantity
	s.persistLocked(ctx)
	s.notifyLocked()
}

// Remove deletes the entry entirely.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[productID]; !exists {
		return
	}

	delete(s.items, productID)
	s.persistLocked(ctx)
	s.notifyLocked()
}

// Clear empties the mapping and persists the empty mapping. Called after a
// successful checkout.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(models.CartMapping)
	s.persistLocked(ctx)
	s.notifyLocked()
}

// Snapshot returns a defensive copy of the current mapping.
func (s *Store) Snapshot() models.CartMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Clone()
}

// Subscribe registers fn to run after every mutation, with a copy of the
// new mapping. Callbacks run synchronously under the store lock, so they
// must be cheap and must not call back into the store.
func (s *Store) Subscribe(fn func(models.CartMapping)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, fn)
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := s.storage.Set(ctx, s.key, s.items, s.ttl); err != nil {
		slog.Error("failed to persist cart",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
	}
}

func (s *Store) notifyLocked() {
	snapshot := s.items.Clone()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}
