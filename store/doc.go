// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the collection store behind Member's Corner.

A Store holds named collections of JSON-like documents with generated ids.
Backends live in db (SQL) and db/firestoredb (Firestore).

# Writes

Add and Update accept Fields. ServerTimestamp is replaced with the backend's
commit time. Update is a transactional read-modify-write:

	err := st.Update(ctx, "polls", id, func(doc store.Document) (store.Fields, error) {
		var poll models.Poll
		if err := doc.DataTo(&poll); err != nil {
			return nil, err
		}
		return store.Fields{"options": ...}, nil
	})

# Watching

Watch streams full collection snapshots, newest document first. Hub
implements Watch for backends without change feeds.

# Metrics

Instrument wraps a Store with memberscorner_store_operations_total and
memberscorner_store_operation_duration_seconds.
*/
package store
