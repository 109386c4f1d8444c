// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/memberscorner/cliparse"
	"github.com/danielhkuo/memberscorner/corner"
	"github.com/danielhkuo/memberscorner/handlers"
	"github.com/danielhkuo/memberscorner/middleware"
)

func NewRouter(svc *corner.Service, feed *corner.Feed, cfg cliparse.Config, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	// Initialize handlers
	cornerHandler := handlers.NewCornerHandler(feed, cfg)
	pollHandler := handlers.NewPollHandler(svc, cfg)
	suggestionHandler := handlers.NewSuggestionHandler(svc, cfg)

	r.Use(middleware.CORS(cfg.AllowedOrigin))
	r.Use(middleware.NewHTTPMetrics(reg).Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithLogging)

		// Board (any signed session, including anonymous)
		r.Get("/corner", cornerHandler.GetBoard)
		r.Get("/corner/stream", cornerHandler.Stream)

		// Polls
		r.Post("/polls", pollHandler.CreatePoll)
		r.Post("/polls/{id}/votes", pollHandler.CastVote)
		r.Delete("/polls/{id}", pollHandler.DeletePoll)

		// Suggestion box
		r.Post("/suggestions", suggestionHandler.SubmitSuggestion)
		r.Delete("/suggestions/{id}", suggestionHandler.DeleteSuggestion)
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("memberscorner API v1"))
	})

	return r
}
