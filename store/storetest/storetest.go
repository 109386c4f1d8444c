// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storetest holds the behaviour every store.Store backend must share.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/memberscorner/store"
)

// Factory returns an empty store. It should register its own cleanup.
type Factory func(t *testing.T) store.Store

const watchTimeout = 5 * time.Second

// Run exercises newStore against the store.Store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("AddGet", func(t *testing.T) { testAddGet(t, newStore(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("ListNewestFirst", func(t *testing.T) { testListNewestFirst(t, newStore(t)) })
	t.Run("CollectionsAreSeparate", func(t *testing.T) { testCollectionsAreSeparate(t, newStore(t)) })
	t.Run("UpdateMerges", func(t *testing.T) { testUpdateMerges(t, newStore(t)) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("UpdateAborts", func(t *testing.T) { testUpdateAborts(t, newStore(t)) })
	t.Run("UpdateSerializes", func(t *testing.T) { testUpdateSerializes(t, newStore(t)) })
	t.Run("DeleteIdempotent", func(t *testing.T) { testDeleteIdempotent(t, newStore(t)) })
	t.Run("Watch", func(t *testing.T) { testWatch(t, newStore(t)) })
}

func testAddGet(t *testing.T, s store.Store) {
	ctx := context.Background()

	id, err := s.Add(ctx, "notes", store.Fields{
		"text":      "hello",
		"count":     2,
		"createdAt": store.ServerTimestamp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)

	var note struct {
		Text      string    `json:"text"`
		Count     int       `json:"count"`
		CreatedAt time.Time `json:"createdAt"`
	}
	require.NoError(t, doc.DataTo(&note))
	assert.Equal(t, "hello", note.Text)
	assert.Equal(t, 2, note.Count)
	assert.False(t, note.CreatedAt.IsZero(), "server timestamp should be resolved")
}

func testGetMissing(t *testing.T, s store.Store) {
	_, err := s.Get(context.Background(), "notes", "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testListNewestFirst(t *testing.T, s store.Store) {
	ctx := context.Background()

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		id, err := s.Add(ctx, "notes", store.Fields{"text": text})
		require.NoError(t, err)
		ids = append(ids, id)
		// Creation times must differ
		time.Sleep(5 * time.Millisecond)
	}

	docs, err := s.List(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, docIDs(docs))
}

func testCollectionsAreSeparate(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Add(ctx, "notes", store.Fields{"text": "a"})
	require.NoError(t, err)

	docs, err := s.List(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func testUpdateMerges(t *testing.T, s store.Store) {
	ctx := context.Background()

	id, err := s.Add(ctx, "notes", store.Fields{"text": "a", "tags": []string{"x"}})
	require.NoError(t, err)

	err = s.Update(ctx, "notes", id, func(doc store.Document) (store.Fields, error) {
		assert.Equal(t, "a", doc.Data["text"])
		return store.Fields{"tags": []string{"x", "y"}}, nil
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "notes", id)
	require.NoError(t, err)

	var note struct {
		Text string   `json:"text"`
		Tags []string `json:"tags"`
	}
	require.NoError(t, doc.DataTo(&note))
	assert.Equal(t, "a", note.Text, "untouched fields survive")
	assert.Equal(t, []string{"x", "y"}, note.Tags)
}

func testUpdateMissing(t *testing.T, s store.Store) {
	called := false
	err := s.Update(context.Background(), "notes", "does-not-exist", func(store.Document) (store.Fields, error) {
		called = true
		return store.Fields{"text": "b"}, nil
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, called)
}

func testUpdateAborts(t *testing.T, s store.Store) {
	ctx := context.Background()
	errAbort := errors.New("abort")

	id, err := s.Add(ctx, "notes", store.Fields{"text": "a"})
	require.NoError(t, err)

	err = s.Update(ctx, "notes", id, func(store.Document) (store.Fields, error) {
		return store.Fields{"text": "b"}, errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	// nil fields skip the write
	err = s.Update(ctx, "notes", id, func(store.Document) (store.Fields, error) {
		return nil, nil
	})
	assert.NoError(t, err)

	doc, err := s.Get(ctx, "notes", id)
	require.NoError(t, err)
	assert.Equal(t, "a", doc.Data["text"])
}

// testUpdateSerializes increments a counter concurrently. Lost updates would
// leave it short.
func testUpdateSerializes(t *testing.T, s store.Store) {
	ctx := context.Background()
	const writers = 8

	id, err := s.Add(ctx, "counters", store.Fields{"n": 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, "counters", id, func(doc store.Document) (store.Fields, error) {
				var c struct {
					N int `json:"n"`
				}
				if err := doc.DataTo(&c); err != nil {
					return nil, err
				}
				return store.Fields{"n": c.N + 1}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	doc, err := s.Get(ctx, "counters", id)
	require.NoError(t, err)

	var c struct {
		N int `json:"n"`
	}
	require.NoError(t, doc.DataTo(&c))
	assert.Equal(t, writers, c.N)
}

func testDeleteIdempotent(t *testing.T, s store.Store) {
	ctx := context.Background()

	id, err := s.Add(ctx, "notes", store.Fields{"text": "a"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "notes", id))
	require.NoError(t, s.Delete(ctx, "notes", id))

	_, err = s.Get(ctx, "notes", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testWatch(t *testing.T, s store.Store) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Add(ctx, "notes", store.Fields{"text": "existing"})
	require.NoError(t, err)

	snaps, err := s.Watch(ctx, "notes")
	require.NoError(t, err)

	first := nextSnapshot(t, snaps, func(s store.Snapshot) bool { return len(s.Documents) == 1 })
	assert.Equal(t, "notes", first.Collection)

	id, err := s.Add(ctx, "notes", store.Fields{"text": "new"})
	require.NoError(t, err)
	added := nextSnapshot(t, snaps, func(s store.Snapshot) bool { return len(s.Documents) == 2 })
	assert.Equal(t, id, added.Documents[0].ID, "newest first")

	require.NoError(t, s.Delete(ctx, "notes", id))
	nextSnapshot(t, snaps, func(s store.Snapshot) bool { return len(s.Documents) == 1 })

	cancel()
	deadline := time.After(watchTimeout)
	for {
		select {
		case _, ok := <-snaps:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

// nextSnapshot reads snapshots until one satisfies ok
func nextSnapshot(t *testing.T, snaps <-chan store.Snapshot, ok func(store.Snapshot) bool) store.Snapshot {
	t.Helper()

	deadline := time.After(watchTimeout)
	for {
		select {
		case snap, open := <-snaps:
			require.True(t, open, "watch channel closed early")
			if ok(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func docIDs(docs []store.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}
