// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Post("/polls/{pollID}/votes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest("POST", "/polls/"+id+"/votes", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	// All three requests share one series
	assert.Equal(t, 1, promtest.CollectAndCount(m.requests))
	assert.Equal(t, 3.0, promtest.ToFloat64(m.requests.WithLabelValues("/polls/{pollID}/votes", "POST", "204")))
}

func TestHTTPMetrics_Unmatched(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
}
