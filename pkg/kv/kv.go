package kv

import "context"

// ErrNotFound is returned by Get when the key holds no value.
type notFoundError struct{}

func (notFoundError) Error() string { return "kv: key not found" }

var ErrNotFound error = notFoundError{}

// SessionStore is browser-session-scoped storage: values expire with the
// store's TTL and are guaranteed gone at session end. Used for the checkout
// address and order references in transit.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// PersistentStore survives browser restarts. Used solely for the cart.
type PersistentStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}
