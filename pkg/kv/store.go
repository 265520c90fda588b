// Package kv is the storage adapter every record set goes through: a flat,
// string-valued key space with prefix enumeration. Backends are pluggable
// (in-process memory, Redis, SQL) and all satisfy Store.
//
// Writes replace the whole value of a key. There are no multi-key commits and
// no compare-and-swap, so two writers on the same key resolve last-write-wins.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrCorrupt marks a stored value that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt value")

// Store is the storage contract.
type Store interface {
	// Read returns the value at key. ok is false when the key is absent.
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	// Write stores value at key, replacing any previous value.
	Write(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// KeysWithPrefix lists every key beginning with prefix, sorted.
	KeysWithPrefix(ctx context.Context, prefix string) ([]string, error)
}

// ReadJSON decodes the JSON value at key into dest. ok is false when the key
// is absent; dest is left untouched in that case.
func ReadJSON(ctx context.Context, store Store, key string, dest any) (bool, error) {
	raw, ok, err := store.Read(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %q: %w: %w", key, ErrCorrupt, err)
	}
	return true, nil
}

// WriteJSON encodes value as JSON and stores it at key.
func WriteJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := store.Write(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// ReadList decodes the JSON array stored at key. An absent key is an empty list.
func ReadList[T any](ctx context.Context, store Store, key string) ([]T, error) {
	var items []T
	if _, err := ReadJSON(ctx, store, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteList stores items at key as a JSON array. A nil slice is written as [].
func WriteList[T any](ctx context.Context, store Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return WriteJSON(ctx, store, key, items)
}

func sortedKeys(keys []string) []string {
	sort.Strings(keys)
	return keys
}
