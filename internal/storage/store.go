package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrEmptyKey = errors.New("key cannot be empty")
)

// Store is a string key-value store, the persistence surface of the tracker
// (calendar months, theme and sound preferences).
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
