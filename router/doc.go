// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Member's Corner API.

# Route Registration

NewRouter creates a configured chi router with all endpoints:

	r := router.NewRouter(svc, feed, cfg, reg)

CORS and HTTP metrics wrap every route. Request logging wraps the API routes.

# Endpoints

Operational:

	GET /health   - Liveness
	GET /metrics  - Prometheus exposition for reg

Board (any signed session):

	GET /corner         - Render-ready board for the caller
	GET /corner/stream  - Server-sent board updates

Polls:

	POST   /polls                   - Create poll (committee)
	POST   /polls/{id}/votes        - Cast or move vote (member)
	DELETE /polls/{id}?confirm=true - Delete poll (committee)

Suggestion box:

	POST   /suggestions                   - Submit anonymously (member)
	DELETE /suggestions/{id}?confirm=true - Delete (officer)
*/
package router
