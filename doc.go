// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Member's Corner API server.

Member's Corner is the community area of a membership site: committee
members run single-choice polls, members vote once per poll and drop
anonymous notes in a suggestion box, and officers moderate the box. Every
poll creation and deletion lands in an activity log.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SESSION_SECRET=... DATABASE_URL=corner.db go run .

Or against Firestore:

	go run . -b firestore -firebase-project my-project -session-secret ...

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): Key for X-Session-Signature
  - DATABASE_URL (-d): Connection string for sqlite, postgres or mysql

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_BACKEND (-b): sqlite, postgres, mysql or firestore (default: sqlite)
  - APP_ID (-app-id): Document namespace
  - DEBUG (-debug): Debug logging

Variables may also come from a .env file.

# Architecture

  - corner: Poll, vote and suggestion operations, live board feed
  - store: Collection store interface, change hub, metrics
  - db: SQL document store; db/firestoredb: Firestore document store
  - handlers: HTTP request handlers
  - router: Route definitions using chi
  - middleware: CORS, logging, metrics, JSON helpers
  - auth: Session signature verification
  - models: Request/response and document types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
