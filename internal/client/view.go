package client

import (
	"context"
	"log"
	"sync"
	"time"
)

// View is a read-through cache of one server collection. Each View has its
// own lock, so the catalog, forum and history load independently.
type View[T any] struct {
	name   string
	maxAge time.Duration
	load   func(context.Context) ([]T, error)

	mu        sync.Mutex
	items     []T
	fetchedAt time.Time
	lastErr   error
}

// NewView returns an empty View. A maxAge of zero means loaded data never goes stale.
func NewView[T any](name string, maxAge time.Duration, load func(context.Context) ([]T, error)) *View[T] {
	return &View[T]{name: name, maxAge: maxAge, load: load}
}

// Items returns a copy of what was last loaded.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]T(nil), v.items...)
}

// Stale reports whether the view was never loaded or is older than maxAge.
func (v *View[T]) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.staleLocked()
}

func (v *View[T]) staleLocked() bool {
	if v.fetchedAt.IsZero() {
		return true
	}
	return v.maxAge > 0 && time.Since(v.fetchedAt) > v.maxAge
}

// Err is the error of the last failed refresh, nil after a success.
func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// Refresh reloads from the server. On failure the error is logged and the
// previous items are kept.
func (v *View[T]) Refresh(ctx context.Context) error {
	items, err := v.load(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		log.Printf("load %s: %v", v.name, err)
		v.lastErr = err
		return err
	}
	v.items = items
	v.fetchedAt = time.Now()
	v.lastErr = nil
	return nil
}

// Get refreshes a stale view, then returns its items.
func (v *View[T]) Get(ctx context.Context) []T {
	if v.Stale() {
		_ = v.Refresh(ctx)
	}
	return v.Items()
}

// Append adds a record the server just confirmed, without a refetch.
func (v *View[T]) Append(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = append(v.items, item)
}
