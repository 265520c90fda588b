package kv

import (
	"context"

	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/shard"
)

// ShardSet stores one JSON list per owner under "<kind>_<owner>".
type ShardSet[T any] struct {
	store Store
	kind  shard.Kind
	logg  *logger.Logger
}

// NewShardSet binds kind to store. A nil logger discards degraded-read warnings.
func NewShardSet[T any](store Store, kind shard.Kind, logg *logger.Logger) *ShardSet[T] {
	return &ShardSet[T]{store: store, kind: kind, logg: logger.OrNop(logg)}
}

// Kind reports the record family of the set.
func (s *ShardSet[T]) Kind() shard.Kind {
	return s.kind
}

// Of returns owner's shard.
func (s *ShardSet[T]) Of(owner shard.Owner) *Collection[T] {
	return NewCollection[T](s.store, shard.Key(s.kind, owner), s.logg)
}

func (s *ShardSet[T]) Load(ctx context.Context, owner shard.Owner) ([]T, error) {
	return s.Of(owner).Load(ctx)
}

func (s *ShardSet[T]) LoadOrEmpty(ctx context.Context, owner shard.Owner) []T {
	return s.Of(owner).LoadOrEmpty(ctx)
}

func (s *ShardSet[T]) LoadForUpdate(ctx context.Context, owner shard.Owner) ([]T, error) {
	return s.Of(owner).LoadForUpdate(ctx)
}

func (s *ShardSet[T]) Save(ctx context.Context, owner shard.Owner, items []T) error {
	return s.Of(owner).Save(ctx, items)
}

// Owners lists every owner with a stored shard of this kind.
func (s *ShardSet[T]) Owners(ctx context.Context) ([]shard.Owner, error) {
	keys, err := s.store.KeysWithPrefix(ctx, shard.Prefix(s.kind))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list "+string(s.kind)+" shards")
	}
	owners := make([]shard.Owner, 0, len(keys))
	for _, key := range keys {
		if owner, ok := shard.OwnerFromKey(s.kind, key); ok {
			owners = append(owners, owner)
		}
	}
	return owners, nil
}

// Clear deletes owner's shard key entirely.
func (s *ShardSet[T]) Clear(ctx context.Context, owner shard.Owner) error {
	key := shard.Key(s.kind, owner)
	if err := s.store.Remove(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clear "+key)
	}
	return nil
}
