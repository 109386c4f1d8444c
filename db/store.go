// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/memberscorner/store"
)

// Open connects to a SQL database and verifies the connection.
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	// A single connection keeps in-memory SQLite databases shared and
	// serialises writers.
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	return conn, nil
}

// DocumentStore implements store.Store on a single SQL table.
type DocumentStore struct {
	db        *sql.DB
	dialect   Dialect
	namespace string
	hub       *store.Hub
	now       func() time.Time
}

func NewDocumentStore(db *sql.DB, dialect Dialect, namespace string) *DocumentStore {
	return &DocumentStore{
		db:        db,
		dialect:   dialect,
		namespace: namespace,
		hub:       store.NewHub(),
		now:       time.Now,
	}
}

func (s *DocumentStore) Add(ctx context.Context, collection string, data store.Fields) (string, error) {
	id := uuid.NewString()
	now := s.now().UTC()

	payload, err := json.Marshal(store.Resolve(data, now))
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO document (namespace, collection, id, data, created_seq, updated_seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`), s.namespace, collection, id, string(payload), now.UnixNano(), now.UnixNano())
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	s.hub.Notify(collection)
	return id, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`
		SELECT data FROM document
		WHERE namespace = ? AND collection = ? AND id = ?
	`), s.namespace, collection, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, fmt.Errorf("failed to query %s/%s: %w", collection, id, err)
	}

	return decodeDocument(id, payload)
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]store.Document, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(`
		SELECT id, data FROM document
		WHERE namespace = ? AND collection = ?
		ORDER BY created_seq DESC, id
	`), s.namespace, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		doc, err := decodeDocument(id, payload)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	return docs, nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fn store.UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var payload string
	err = tx.QueryRowContext(ctx, s.dialect.rebind(`
		SELECT data FROM document
		WHERE namespace = ? AND collection = ? AND id = ?`+s.dialect.lockClause()),
		s.namespace, collection, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query %s/%s: %w", collection, id, err)
	}

	doc, err := decodeDocument(id, payload)
	if err != nil {
		return err
	}

	fields, err := fn(doc)
	if err != nil {
		return err
	}
	if fields == nil {
		return nil
	}

	now := s.now().UTC()
	maps.Copy(doc.Data, store.Resolve(fields, now))
	updated, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.dialect.rebind(`
		UPDATE document SET data = ?, updated_seq = ?
		WHERE namespace = ? AND collection = ? AND id = ?
	`), string(updated), now.UnixNano(), s.namespace, collection, id)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.hub.Notify(collection)
	return nil
}

// Delete removes the document. Deleting a missing document is not an error.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(`
		DELETE FROM document
		WHERE namespace = ? AND collection = ? AND id = ?
	`), s.namespace, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}

	s.hub.Notify(collection)
	return nil
}

func (s *DocumentStore) Watch(ctx context.Context, collection string) (<-chan store.Snapshot, error) {
	return s.hub.Watch(ctx, collection, s.List)
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}

func decodeDocument(id, payload string) (store.Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return store.Document{}, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return store.Document{ID: id, Data: data}, nil
}
