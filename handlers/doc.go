// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Member's Corner API.

# Handler Types

Each handler is a struct with its domain dependency and config:

  - PollHandler: Poll creation, voting and deletion
  - SuggestionHandler: Anonymous suggestion box
  - CornerHandler: Board snapshot and live stream

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(svc, cfg)
	cornerHandler := handlers.NewCornerHandler(feed, cfg)

# Sessions

Every request carries the caller's session in signed headers:

	X-Member-ID, X-Member-Name, X-Member-Roles, X-Member-Expired
	X-Session-Signature

A missing or invalid signature yields 401. Permission checks happen in the
corner package and surface as 403.

# Polls

	POST   /polls            → CreatePoll (committee)
	POST   /polls/{id}/votes → CastVote (active members)
	DELETE /polls/{id}       → DeletePoll (committee, ?confirm=true)

# Suggestions

	POST   /suggestions      → SubmitSuggestion (active members)
	DELETE /suggestions/{id} → DeleteSuggestion (officers, ?confirm=true)

Deletes without confirm=true answer 428 Precondition Required.

# Board

	GET /corner        → GetBoard
	GET /corner/stream → Stream (text/event-stream)

The stream sends one "board" event per change, rendered for the caller.
*/
package handlers
