// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores corner collections in a SQL database.

# Connecting

	conn, err := db.Open(db.DialectPostgres, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}
	st := db.NewDocumentStore(conn, db.DialectPostgres, cfg.AppID)

Supported dialects are sqlite (modernc.org/sqlite), postgres (lib/pq) and
mysql (go-sql-driver/mysql). SQLite is limited to one open connection.

# Schema

CreateSchema creates a single table. Safe to call multiple times - uses
IF NOT EXISTS.

  - document: (namespace, collection, id) primary key, JSON data,
    created_seq and updated_seq in unix nanoseconds

Collections are listed newest first by created_seq.

# Transactions

DocumentStore.Update reads the row with SELECT ... FOR UPDATE (plain SELECT
on SQLite), applies the update function and writes the merged document in
the same transaction.

# Watching

Writes notify an in-process store.Hub after commit. Watch reloads the
collection on each notification, so changes made by other processes are
not observed.
*/
package db
