// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danielhkuo/memberscorner/store"
)

// createdField orders collections by creation time. It is stripped on read.
const createdField = "_created"

type Config struct {
	ProjectID       string
	CredentialsFile string
	AppID           string
}

// Connect initializes a Firebase app and returns a store on its Firestore
// database. Without a credentials file, application default credentials are
// used.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.ProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect firestore: %w", err)
	}

	return New(client, cfg.AppID), nil
}

// Store implements store.Store on Firestore. Collections live under
// artifacts/{appID}/public/data.
type Store struct {
	client *firestore.Client
	appID  string
}

func New(client *firestore.Client, appID string) *Store {
	return &Store{client: client, appID: appID}
}

func (s *Store) collection(name string) *firestore.CollectionRef {
	return s.client.Collection("artifacts").Doc(s.appID).
		Collection("public").Doc("data").
		Collection(name)
}

func (s *Store) Add(ctx context.Context, collection string, data store.Fields) (string, error) {
	fields := toFirestore(data)
	fields[createdField] = firestore.ServerTimestamp

	ref, _, err := s.collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	snap, err := s.collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return toDocument(snap), nil
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Document, error) {
	snaps, err := s.ordered(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return toDocuments(snaps), nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fn store.UpdateFunc) error {
	ref := s.collection(collection).Doc(id)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
		}

		fields, err := fn(toDocument(snap))
		if err != nil {
			return err
		}
		if fields == nil {
			return nil
		}

		updates := make([]firestore.Update, 0, len(fields))
		for k, v := range toFirestore(fields) {
			updates = append(updates, firestore.Update{Path: k, Value: v})
		}
		return tx.Update(ref, updates)
	})
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Watch streams query snapshots from a Firestore listener.
func (s *Store) Watch(ctx context.Context, collection string) (<-chan store.Snapshot, error) {
	it := s.ordered(collection).Snapshots(ctx)
	out := make(chan store.Snapshot, 1)

	go func() {
		defer close(out)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, iterator.Done) && status.Code(err) != codes.Canceled {
					slog.Error("firestore listener stopped", "collection", collection, "error", err)
				}
				return
			}

			snaps, err := qs.Documents.GetAll()
			if err != nil {
				slog.Warn("failed to read snapshot", "collection", collection, "error", err)
				continue
			}

			select {
			case out <- store.Snapshot{Collection: collection, Documents: toDocuments(snaps), ReadAt: qs.ReadTime}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) ordered(collection string) firestore.Query {
	return s.collection(collection).OrderBy(createdField, firestore.Desc)
}

func toFirestore(data store.Fields) map[string]any {
	out := make(map[string]any, len(data)+1)
	for k, v := range data {
		if store.IsServerTimestamp(v) {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}

func toDocument(snap *firestore.DocumentSnapshot) store.Document {
	data := snap.Data()
	delete(data, createdField)
	return store.Document{ID: snap.Ref.ID, Data: data}
}

func toDocuments(snaps []*firestore.DocumentSnapshot) []store.Document {
	docs := make([]store.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, toDocument(snap))
	}
	return docs
}
