// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                      Server port (default: 3318)
	-b                      Store backend: sqlite, postgres, mysql, firestore (default: sqlite)
	-d                      Database URL for SQL backends
	-firebase-credentials   Service account JSON for firestore
	-firebase-project       Firebase project id
	-app-id                 Document namespace (default: default-app-id)
	-origin                 Allowed CORS origin (default: *)
	-session-secret         Session signature secret
	-debug                  Debug logging
	-env-file               Load variables from this file

# Environment Variables

Flags fall back to environment variables:

	PORT                       → -p
	STORE_BACKEND              → -b
	DATABASE_URL               → -d
	FIREBASE_CREDENTIALS_FILE  → -firebase-credentials
	FIREBASE_PROJECT_ID        → -firebase-project
	APP_ID                     → -app-id
	ALLOWED_ORIGIN             → -origin
	SESSION_SECRET             → -session-secret
	DEBUG                      → -debug

CLI flags take precedence over environment variables. Before the fallback,
variables are loaded with godotenv from -env-file, or from ./.env when it
exists. Variables already present in the environment are never replaced.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - DATABASE_URL is missing for a SQL backend
  - the backend is unknown
  - PORT or DEBUG cannot be parsed
  - an explicit -env-file cannot be read
*/
package cliparse
