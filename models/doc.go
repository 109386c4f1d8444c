// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options
  - CastVoteRequest: optionId
  - SubmitSuggestionRequest: text

# Response Types

  - CreatePollResponse: pollId
  - SubmitSuggestionResponse: suggestionId, message
  - BoardResponse: render-ready polls and suggestions for one viewer
  - ErrorResponse: error, message

# Domain Types

Documents as they live in the collection store:

  - Poll: question and embedded options
  - Option: label plus the set of member ids that currently chose it
  - Suggestion: anonymous free text (the author id is stored, never shown)
  - ActivityLogEntry: write-only record of committee and officer actions

# Session

Session carries the caller's profile and role flags. It is built from signed
request headers by the auth package and passed explicitly into every
operation.

# Constants

	StatusActive    = "active"
	AnonymousAuthor = "Anonymous"

Collections:

	CollectionPolls       = "polls"
	CollectionSuggestions = "suggestions"
	CollectionActivityLog = "activity_logs"
*/
package models
