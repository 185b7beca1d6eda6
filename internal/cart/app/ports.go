package app

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a Store when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is the durable key-value collaborator the cart persists into.
// Writes are full-state and last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
