package kv

import (
	"context"
	"time"

	"github.com/angelmondragon/mallkv/pkg/metrics"
)

// Instrumented decorates a Store with per-operation timing and failure counts.
type Instrumented struct {
	next    Store
	backend string
	metrics *metrics.StorageMetrics
}

// Instrument wraps store. A nil recorder disables recording.
func Instrument(store Store, backend string, m *metrics.StorageMetrics) *Instrumented {
	return &Instrumented{next: store, backend: backend, metrics: m}
}

func (i *Instrumented) Read(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := i.next.Read(ctx, key)
	i.observe("read", start, err)
	return value, ok, err
}

func (i *Instrumented) Write(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Write(ctx, key, value)
	i.observe("write", start, err)
	return err
}

func (i *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	i.observe("remove", start, err)
	return err
}

func (i *Instrumented) KeysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := i.next.KeysWithPrefix(ctx, prefix)
	i.observe("keys", start, err)
	return keys, err
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	i.metrics.ObserveDuration(i.backend, op, time.Since(start))
	if err != nil {
		i.metrics.IncFailure(i.backend, op)
	}
}
