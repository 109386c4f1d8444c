// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.Use(middleware.WithLogging)

Logs request start (method, path, remote) and completion (status, duration_ms).

# CORS Middleware

Enable cross-origin requests for the host application's frontend:

	r.Use(middleware.CORS(cfg.AllowedOrigin))

Allows methods GET, POST, DELETE, OPTIONS with Content-Type, Authorization
and the X-Member-* session headers. An origin of "*" reflects the caller.

# Metrics

	m := middleware.NewHTTPMetrics(reg)
	r.Use(m.Handler)

Exports memberscorner_http_requests_total and
memberscorner_http_request_duration_seconds labelled by chi route pattern.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
