// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/store"
)

// Feed keeps the latest Board in sync with the store's polls and
// suggestions collections and fans each new board out to subscribers.
type Feed struct {
	store store.Store

	mu     sync.RWMutex
	board  Board
	subs   map[chan Board]struct{}
	loaded map[string]bool

	ready     chan struct{}
	readyOnce sync.Once
}

func NewFeed(s store.Store) *Feed {
	return &Feed{
		store:  s,
		subs:   make(map[chan Board]struct{}),
		loaded: make(map[string]bool),
		ready:  make(chan struct{}),
	}
}

// Run watches both collections until ctx is done.
func (f *Feed) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	polls, err := f.store.Watch(ctx, models.CollectionPolls)
	if err != nil {
		return fmt.Errorf("failed to watch polls: %w", err)
	}
	suggestions, err := f.store.Watch(ctx, models.CollectionSuggestions)
	if err != nil {
		return fmt.Errorf("failed to watch suggestions: %w", err)
	}

	for polls != nil || suggestions != nil {
		select {
		case snap, ok := <-polls:
			if !ok {
				polls = nil
				continue
			}
			f.apply(snap)
		case snap, ok := <-suggestions:
			if !ok {
				suggestions = nil
				continue
			}
			f.apply(snap)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrFeedStopped
}

func (f *Feed) apply(snap store.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := ApplySnapshot(f.board, snap)
	if err != nil {
		slog.Warn("snapshot applied with errors", "collection", snap.Collection, "error", err)
	}
	f.board = next

	f.loaded[snap.Collection] = true
	if f.loaded[models.CollectionPolls] && f.loaded[models.CollectionSuggestions] {
		f.readyOnce.Do(func() { close(f.ready) })
	}

	for ch := range f.subs {
		// Keep only the newest board for slow subscribers.
		select {
		case <-ch:
		default:
		}
		ch <- next
	}

	slog.Debug("board updated", "collection", snap.Collection, "documents", len(snap.Documents))
}

// Board returns the latest board.
func (f *Feed) Board() Board {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.board
}

// Ready is closed once both collections have been loaded.
func (f *Feed) Ready() <-chan struct{} {
	return f.ready
}

// Subscribe returns a channel primed with the current board that receives
// every later board. The cancel func unregisters and closes the channel.
func (f *Feed) Subscribe() (<-chan Board, func()) {
	ch := make(chan Board, 1)

	f.mu.Lock()
	ch <- f.board
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			close(ch)
			f.mu.Unlock()
		})
	}
}
