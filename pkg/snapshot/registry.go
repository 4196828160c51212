package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vango-dev/bind/pkg/bind"
)

// Registry errors.
var (
	// ErrNoPersistKey is returned when tracking a source that has no
	// persist key configured.
	ErrNoPersistKey = errors.New("snapshot: source has no persist key")

	// ErrDuplicateKey is returned when two sources claim the same key.
	ErrDuplicateKey = errors.New("snapshot: duplicate persist key")
)

// entry is one tracked source, type-erased behind closures so the registry
// stays non-generic.
type entry struct {
	key       string
	transient bool
	capture   func() any
	restore   func(raw json.RawMessage) error
	watch     func(fn func()) (stop func())
}

// Registry tracks sources for capture and restore. The zero value is not
// usable; create one with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Track registers src under its configured persist key.
func Track[T any](r *Registry, src *bind.Source[T]) error {
	return TrackAs(r, src.PersistKey(), src)
}

// TrackAs registers src under an explicit key, overriding any configured
// persist key. Transient sources may be tracked but are skipped by Capture
// and Restore.
func TrackAs[T any](r *Registry, key string, src *bind.Source[T]) error {
	if key == "" {
		return ErrNoPersistKey
	}

	e := &entry{
		key:       key,
		transient: src.IsTransient(),
		capture:   func() any { return src.Get() },
		restore: func(raw json.RawMessage) error {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("snapshot: restore %q: %w", key, err)
			}
			src.Set(v)
			return nil
		},
		watch: src.WatchAny,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[key]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.entries[key] = e
	return nil
}

// Keys returns the tracked persist keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Capture serializes the current value of every tracked non-transient
// source into one JSON document.
func (r *Registry) Capture() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(r.entries))
	for key, e := range r.entries {
		if e.transient {
			continue
		}
		raw, err := json.Marshal(e.capture())
		if err != nil {
			return nil, fmt.Errorf("snapshot: capture %q: %w", key, err)
		}
		out[key] = raw
	}
	return json.Marshal(out)
}

// Restore writes a captured snapshot back into the tracked sources. All
// writes happen inside one batch, so dependent containers recompute once
// against the fully-restored state. Keys in the snapshot with no tracked
// source are ignored, so old snapshots stay loadable as the graph evolves.
// Individual decode failures are collected; the remaining keys still
// restore.
func (r *Registry) Restore(data []byte) error {
	var in map[string]json.RawMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("snapshot: decode: %w", err)
	}

	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	var errs []error
	bind.Batch(func() {
		for _, e := range entries {
			if e.transient {
				continue
			}
			raw, ok := in[e.key]
			if !ok {
				continue
			}
			if err := e.restore(raw); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}

// Save captures the registry and writes the snapshot to store under key.
func (r *Registry) Save(ctx context.Context, store Store, key string) error {
	data, err := r.Capture()
	if err != nil {
		return err
	}
	return store.Save(ctx, key, data)
}

// Load reads the snapshot under key from store and restores it.
func (r *Registry) Load(ctx context.Context, store Store, key string) error {
	data, err := store.Load(ctx, key)
	if err != nil {
		return err
	}
	return r.Restore(data)
}
