// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import "errors"

// Validation errors. Nothing is written when one of these is returned.
var (
	ErrEmptyQuestion   = errors.New("question is required")
	ErrTooFewOptions   = errors.New("at least 2 options are required")
	ErrEmptySuggestion = errors.New("suggestion text is required")
	ErrNoSuchOption    = errors.New("there is no such option in poll")
)

// Authorization errors.
var (
	ErrMembershipExpired    = errors.New("membership expired")
	ErrNoProfile            = errors.New("no member profile")
	ErrNotCommittee         = errors.New("committee privilege required")
	ErrNotOfficer           = errors.New("officer privilege required")
	ErrConfirmationRequired = errors.New("confirmation required")
)

var ErrFeedStopped = errors.New("feed watchers stopped")

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyQuestion) ||
		errors.Is(err, ErrTooFewOptions) ||
		errors.Is(err, ErrEmptySuggestion) ||
		errors.Is(err, ErrNoSuchOption)
}

// IsForbidden reports whether err denies the caller the operation.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrMembershipExpired) ||
		errors.Is(err, ErrNoProfile) ||
		errors.Is(err, ErrNotCommittee) ||
		errors.Is(err, ErrNotOfficer)
}
