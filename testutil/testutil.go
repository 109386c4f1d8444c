// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/memberscorner/auth"
	"github.com/danielhkuo/memberscorner/cliparse"
	"github.com/danielhkuo/memberscorner/db"
	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/store"
)

// TestNamespace scopes every test document
const TestNamespace = "test-app"

// SetupTestStore opens a fresh in-memory SQLite document store
func SetupTestStore(t *testing.T) *db.DocumentStore {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	s := db.NewDocumentStore(conn, db.DialectSQLite, TestNamespace)
	t.Cleanup(func() { s.Close() })

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		Backend:       cliparse.BackendSQLite,
		DatabaseURL:   ":memory:",
		AppID:         TestNamespace,
		SessionSecret: "test-session-secret",
		AllowedOrigin: "*",
	}
}

// Session helpers

func MemberSession(id, name string) models.Session {
	return models.Session{Profile: &models.Profile{MemberID: id, Name: name}}
}

func CommitteeSession(id, name string) models.Session {
	sess := MemberSession(id, name)
	sess.IsCommitteePlus = true
	return sess
}

func OfficerSession(id, name string) models.Session {
	sess := CommitteeSession(id, name)
	sess.IsOfficer = true
	return sess
}

func ExpiredSession(id, name string) models.Session {
	sess := MemberSession(id, name)
	sess.IsExpired = true
	return sess
}

// CreateTestPoll stores a poll with the given options and returns its id.
// votes maps a member id to the option id it voted for.
func CreateTestPoll(t *testing.T, s store.Store, question string, options []string, votes map[string]int) string {
	t.Helper()

	opts := make([]map[string]any, len(options))
	for i, text := range options {
		voters := []string{}
		for member, optionID := range votes {
			if optionID == i+1 {
				voters = append(voters, member)
			}
		}
		opts[i] = map[string]any{"id": i + 1, "text": text, "votes": voters}
	}

	id, err := s.Add(context.Background(), models.CollectionPolls, store.Fields{
		"question":  question,
		"options":   opts,
		"createdBy": "TestUser",
		"createdAt": store.ServerTimestamp,
		"status":    models.StatusActive,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return id
}

// GetTestPoll loads a poll straight from the store
func GetTestPoll(t *testing.T, s store.Store, id string) models.Poll {
	t.Helper()

	doc, err := s.Get(context.Background(), models.CollectionPolls, id)
	if err != nil {
		t.Fatalf("Failed to load poll %s: %v", id, err)
	}

	var poll models.Poll
	if err := doc.DataTo(&poll); err != nil {
		t.Fatalf("Failed to decode poll %s: %v", id, err)
	}
	poll.ID = doc.ID

	return poll
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeSessionRequest creates a test request carrying a signed session
func MakeSessionRequest(method, path string, body any, sess models.Session, cfg cliparse.Config) *http.Request {
	req := MakeRequest(method, path, body, nil)
	auth.SetSessionHeaders(req.Header, sess, cfg.SessionSecret)
	return req
}

// WithURLParam sets a chi route parameter on a request that bypasses the router
func WithURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
