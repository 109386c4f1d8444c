// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different members
// on one poll are all kept
func TestConcurrentVotes(t *testing.T) {
	env := setupEnv(t)
	handler := NewPollHandler(env.svc, env.cfg)

	pollID := testutil.CreateTestPoll(t, env.store, "Venue?", []string{"Hall", "Park", "Roof"}, nil)

	numVoters := 12
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			sess := testutil.MemberSession(fmt.Sprintf("voter-%d", voterIdx), "Voter")
			req := testutil.MakeSessionRequest("POST", "/polls/"+pollID+"/votes",
				models.CastVoteRequest{OptionID: voterIdx%3 + 1}, sess, env.cfg)
			req = testutil.WithURLParam(req, "id", pollID)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	poll := testutil.GetTestPoll(t, env.store, pollID)
	total := 0
	for _, opt := range poll.Options {
		if len(opt.Votes) != numVoters/3 {
			t.Errorf("Expected %d votes for %s, got %d", numVoters/3, opt.Text, len(opt.Votes))
		}
		total += len(opt.Votes)
	}
	if total != numVoters {
		t.Errorf("Expected %d votes in total, got %d", numVoters, total)
	}
}

// TestConcurrentVoteChanges verifies that one member switching options from
// several requests at once still ends with a single vote
func TestConcurrentVoteChanges(t *testing.T) {
	env := setupEnv(t)
	handler := NewPollHandler(env.svc, env.cfg)

	pollID := testutil.CreateTestPoll(t, env.store, "Venue?", []string{"Hall", "Park"}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			req := testutil.MakeSessionRequest("POST", "/polls/"+pollID+"/votes",
				models.CastVoteRequest{OptionID: attempt%2 + 1}, member, env.cfg)
			req = testutil.WithURLParam(req, "id", pollID)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Attempt %d: expected 200, got %d", attempt, w.Code)
			}
		}(i)
	}

	wg.Wait()

	poll := testutil.GetTestPoll(t, env.store, pollID)
	total := len(poll.Options[0].Votes) + len(poll.Options[1].Votes)
	if total != 1 {
		t.Errorf("Expected exactly 1 vote for the member, got %d", total)
	}
}

// TestConcurrentSuggestions verifies that simultaneous submissions each get
// their own document
func TestConcurrentSuggestions(t *testing.T) {
	env := setupEnv(t)
	handler := NewSuggestionHandler(env.svc, env.cfg)

	numMembers := 8
	ids := make(chan string, numMembers)
	var wg sync.WaitGroup

	for i := 0; i < numMembers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sess := testutil.MemberSession(fmt.Sprintf("m-%d", idx), "Member")
			req := testutil.MakeSessionRequest("POST", "/suggestions",
				models.SubmitSuggestionRequest{Text: fmt.Sprintf("Idea %d", idx)}, sess, env.cfg)
			w := httptest.NewRecorder()

			handler.SubmitSuggestion(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("Member %d: expected 201, got %d", idx, w.Code)
				return
			}
			var resp models.SubmitSuggestionResponse
			testutil.AssertJSON(t, w, &resp)
			ids <- resp.SuggestionID
		}(i)
	}

	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate suggestion ID: %s", id)
		}
		seen[id] = true
	}

	docs, err := env.store.List(context.Background(), models.CollectionSuggestions)
	if err != nil {
		t.Fatalf("Failed to list suggestions: %v", err)
	}
	if len(docs) != numMembers {
		t.Errorf("Expected %d suggestions, got %d", numMembers, len(docs))
	}
}

// TestConcurrentCreateAndDelete verifies that polls created and deleted in
// parallel leave only the survivors behind
func TestConcurrentCreateAndDelete(t *testing.T) {
	env := setupEnv(t)
	handler := NewPollHandler(env.svc, env.cfg)

	doomed := make([]string, 5)
	for i := range doomed {
		doomed[i] = testutil.CreateTestPoll(t, env.store, fmt.Sprintf("Old %d?", i), []string{"A", "B"}, nil)
	}

	var wg sync.WaitGroup
	for i, id := range doomed {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()

			req := testutil.MakeSessionRequest("DELETE", "/polls/"+id+"?confirm=true", nil, committee, env.cfg)
			req = testutil.WithURLParam(req, "id", id)
			w := httptest.NewRecorder()

			handler.DeletePoll(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Delete %s: expected 200, got %d", id, w.Code)
			}
		}(id)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeSessionRequest("POST", "/polls",
				models.CreatePollRequest{Question: fmt.Sprintf("New %d?", idx), Options: []string{"A", "B"}},
				committee, env.cfg)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("Create %d: expected 201, got %d", idx, w.Code)
			}
		}(i)
	}

	wg.Wait()

	docs, err := env.store.List(context.Background(), models.CollectionPolls)
	if err != nil {
		t.Fatalf("Failed to list polls: %v", err)
	}
	if len(docs) != len(doomed) {
		t.Errorf("Expected %d polls, got %d", len(doomed), len(docs))
	}
	for _, doc := range docs {
		for _, id := range doomed {
			if doc.ID == id {
				t.Errorf("Deleted poll %s still present", id)
			}
		}
	}
}
