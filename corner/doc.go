// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package corner implements Member's Corner: community polls with a single
vote per member and an anonymous suggestion box.

# Service

Service performs the write operations. Each takes the caller's
models.Session; privileges are checked before anything is written.

	svc := corner.NewService(st, corner.NewActivityLogger(st, reg))
	pollID, err := svc.CreatePoll(ctx, sess, "Venue?", []string{"Hall", "Park"})
	err = svc.CastVote(ctx, sess, pollID, 2)

# Voting

A member holds at most one vote per poll. ApplyVote removes the voter from
every option before adding them to the chosen one, and CastVote writes the
whole options list back inside a store transaction. Voting on a poll that no
longer exists is a no-op.

# Board

ApplySnapshot folds a collection snapshot into the previous Board. Feed
drives it from store.Watch and serves the latest board to HTTP handlers.

# Activity Log

ActivityLogger records poll creation and deletion and suggestion deletion.
Writes run in the background and their failures never reach the caller.
*/
package corner
