// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies the member session forwarded by the host application.

# Session Headers

The host app authenticates members and forwards who they are:

	X-Member-ID          member id (absent for anonymous visitors)
	X-Member-Name        display name
	X-Member-Roles       comma-separated: committee, officer
	X-Member-Expired     true when the membership has lapsed
	X-Session-Signature  HMAC over the values above

Officers are treated as committee members as well.

# Signatures

Signatures use HMAC-SHA256 keyed by SESSION_SECRET:

	sig := auth.SignSession(sess, secret)
	err := auth.ValidateSignature(sess, sig, secret)

The signature is URL-safe base64 encoded without padding. It covers the
resolved session (member id, name, highest role, expiry), so a proxy cannot be
bypassed by editing one header.

# Reading a Session

	sess, err := auth.SessionFromRequest(r, cfg.SessionSecret)

Returns ErrMissingSignature, ErrInvalidSignature or ErrInvalidSession.
SetSessionHeaders is the inverse and is used by tests and internal clients.
*/
package auth
