package kv

import (
	"context"
	"time"
)

// Store is the durable key-value persistence boundary. The cart mirror is
// the only writer today, but the contract is deliberately generic.
type Store interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const CartKey = "cart"
