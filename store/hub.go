// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ListFunc loads the full content of a collection.
type ListFunc func(ctx context.Context, collection string) ([]Document, error)

// Hub gives backends without native change streams a Watch implementation.
// The backend calls Notify after every committed write.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Notify wakes every watcher of collection. Signals coalesce.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (h *Hub) subscribe(collection string) (chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan struct{}]struct{})
	}
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs[collection], ch)
		h.mu.Unlock()
	}
}

// Watch reloads the collection with list on every Notify and delivers the
// result. The first snapshot is loaded before Watch returns.
func (h *Hub) Watch(ctx context.Context, collection string, list ListFunc) (<-chan Snapshot, error) {
	sig, unsubscribe := h.subscribe(collection)

	docs, err := list(ctx, collection)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan Snapshot, 1)
	pending := &Snapshot{Collection: collection, Documents: docs, ReadAt: time.Now()}

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			if pending != nil {
				select {
				case out <- *pending:
					pending = nil
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-sig:
				docs, err := list(ctx, collection)
				if err != nil {
					if ctx.Err() == nil {
						slog.Warn("watch reload failed", "collection", collection, "error", err)
					}
					continue
				}
				pending = &Snapshot{Collection: collection, Documents: docs, ReadAt: time.Now()}
			}
		}
	}()

	return out, nil
}
