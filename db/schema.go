// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavour of a connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// ParseDialect validates a STORE_BACKEND value that names a SQL database.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(s)); d {
	case DialectSQLite, DialectPostgres, DialectMySQL:
		return d, nil
	}
	return "", fmt.Errorf("unsupported SQL dialect %q", s)
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	return string(d)
}

// rebind rewrites ? placeholders for dialects that number them.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// lockClause locks the selected row until the transaction ends. SQLite
// serialises writers on its own.
func (d Dialect) lockClause() string {
	if d == DialectSQLite {
		return ""
	}
	return " FOR UPDATE"
}

// CreateSchema creates the document table for the dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", dialect)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Every collection shares one table. data holds the JSON document;
// created_seq is the creation time in unix nanoseconds and drives ordering.
var schema = map[Dialect][]string{
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS document (
    namespace TEXT NOT NULL,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    created_seq INTEGER NOT NULL,
    updated_seq INTEGER NOT NULL,
    PRIMARY KEY (namespace, collection, id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_document_created ON document(namespace, collection, created_seq)`,
	},
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS document (
    namespace TEXT NOT NULL,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    created_seq BIGINT NOT NULL,
    updated_seq BIGINT NOT NULL,
    PRIMARY KEY (namespace, collection, id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_document_created ON document(namespace, collection, created_seq)`,
	},
	DialectMySQL: {
		`CREATE TABLE IF NOT EXISTS document (
    namespace VARCHAR(128) NOT NULL,
    collection VARCHAR(64) NOT NULL,
    id VARCHAR(64) NOT NULL,
    data LONGTEXT NOT NULL,
    created_seq BIGINT NOT NULL,
    updated_seq BIGINT NOT NULL,
    PRIMARY KEY (namespace, collection, id),
    INDEX idx_document_created (namespace, collection, created_seq)
)`,
	},
}
