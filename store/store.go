// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrClosed   = errors.New("store closed")
)

type serverTimestamp struct{}

// ServerTimestamp may be used as a field value in Add and Update. Backends
// replace it with their own commit time.
var ServerTimestamp any = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// Fields is a partial document. Update overwrites exactly the named fields.
type Fields map[string]any

// Document is one record of a collection.
type Document struct {
	ID   string
	Data map[string]any
}

// DataTo decodes the document's fields into v using its json tags.
func (d Document) DataTo(v any) error {
	buf, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", d.ID, err)
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", d.ID, err)
	}
	return nil
}

// Snapshot is the full, ordered content of a collection at one point in time.
type Snapshot struct {
	Collection string
	Documents  []Document
	ReadAt     time.Time
}

// UpdateFunc receives the latest version of a document inside a transaction
// and returns the fields to overwrite. Returning nil fields skips the write.
type UpdateFunc func(doc Document) (Fields, error)

// Store is the remote collection store. Collections are ordered by creation
// time, newest first.
type Store interface {
	Add(ctx context.Context, collection string, data Fields) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	// Update runs fn against the current document and writes its result
	// atomically. Returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fn UpdateFunc) error
	Delete(ctx context.Context, collection, id string) error
	// Watch delivers a snapshot immediately and after every change to the
	// collection. The channel is closed when ctx is done.
	Watch(ctx context.Context, collection string) (<-chan Snapshot, error)
	Close() error
}

// Resolve returns data with ServerTimestamp sentinels replaced by now.
func Resolve(data Fields, now time.Time) Fields {
	out := make(Fields, len(data))
	for k, v := range data {
		if IsServerTimestamp(v) {
			out[k] = now
			continue
		}
		out[k] = v
	}
	return out
}
