package kv

import (
	"context"
	"errors"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/logger"
)

// Collection is a JSON list stored under one fixed key.
type Collection[T any] struct {
	store Store
	key   string
	logg  *logger.Logger
}

// NewCollection binds key to store. A nil logger discards degraded-read warnings.
func NewCollection[T any](store Store, key string, logg *logger.Logger) *Collection[T] {
	return &Collection[T]{store: store, key: key, logg: logger.OrNop(logg)}
}

// Key reports the storage key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// Exists reports whether the key has been written. A read failure reports false.
func (c *Collection[T]) Exists(ctx context.Context) bool {
	_, ok, err := c.store.Read(ctx, c.key)
	if err != nil {
		c.logg.WarnErr(c.logg.WithKey(ctx, c.key), "existence check failed", err)
		return false
	}
	return ok
}

// Load returns the list, surfacing any storage error.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	return ReadList[T](ctx, c.store, c.key)
}

// LoadOrEmpty returns the list. Any failure is logged and read as empty.
func (c *Collection[T]) LoadOrEmpty(ctx context.Context) []T {
	items, err := c.Load(ctx)
	if err != nil {
		c.logg.WarnErr(c.logg.WithKey(ctx, c.key), "read failed, treating as empty", err)
		return []T{}
	}
	return items
}

// LoadForUpdate returns the list ahead of a read-modify-write. A corrupt value
// is replaced by an empty list; a backend failure aborts the update so a
// transient outage cannot erase the stored records.
func (c *Collection[T]) LoadForUpdate(ctx context.Context) ([]T, error) {
	items, err := c.Load(ctx)
	if err == nil {
		return items, nil
	}
	if errors.Is(err, ErrCorrupt) {
		c.logg.WarnErr(c.logg.WithKey(ctx, c.key), "corrupt value overwritten", err)
		return []T{}, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load "+c.key)
}

// Save replaces the list.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if err := WriteList(ctx, c.store, c.key, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save "+c.key)
	}
	return nil
}
