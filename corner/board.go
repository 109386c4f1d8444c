// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/store"
)

// Board is the render-ready state of the corner. Values are never mutated
// after construction; ApplySnapshot builds a new Board.
type Board struct {
	Polls       []PollTally
	Suggestions []models.Suggestion
	UpdatedAt   time.Time
}

// PollTally is a poll with its derived vote counts.
type PollTally struct {
	Poll       models.Poll
	TotalVotes int
	Percents   []int
}

// ApplySnapshot returns the board that results from replacing one collection
// of prev with the snapshot's documents. The other collection is kept as is.
// Documents that fail to decode are left out and reported in the error; the
// returned board is usable either way.
func ApplySnapshot(prev Board, snap store.Snapshot) (Board, error) {
	next := prev
	next.UpdatedAt = snap.ReadAt

	var errs []error
	switch snap.Collection {
	case models.CollectionPolls:
		next.Polls = make([]PollTally, 0, len(snap.Documents))
		for _, doc := range snap.Documents {
			var poll models.Poll
			if err := doc.DataTo(&poll); err != nil {
				errs = append(errs, err)
				continue
			}
			poll.ID = doc.ID
			next.Polls = append(next.Polls, PollTally{
				Poll:       poll,
				TotalVotes: TotalVotes(poll.Options),
				Percents:   Percentages(poll.Options),
			})
		}
	case models.CollectionSuggestions:
		next.Suggestions = make([]models.Suggestion, 0, len(snap.Documents))
		for _, doc := range snap.Documents {
			var suggestion models.Suggestion
			if err := doc.DataTo(&suggestion); err != nil {
				errs = append(errs, err)
				continue
			}
			suggestion.ID = doc.ID
			next.Suggestions = append(next.Suggestions, suggestion)
		}
	default:
		return prev, fmt.Errorf("unexpected collection %q in snapshot", snap.Collection)
	}

	return next, errors.Join(errs...)
}

// View projects the board for one viewer: their current vote per poll and
// what they may manage. Suggestion author ids are dropped.
func (b Board) View(sess models.Session) models.BoardResponse {
	memberID := sess.MemberID()

	polls := make([]models.PollView, 0, len(b.Polls))
	for _, t := range b.Polls {
		options := make([]models.OptionView, len(t.Poll.Options))
		for i, opt := range t.Poll.Options {
			options[i] = models.OptionView{
				ID:      opt.ID,
				Text:    opt.Text,
				Votes:   len(opt.Votes),
				Percent: t.Percents[i],
			}
		}
		polls = append(polls, models.PollView{
			ID:         t.Poll.ID,
			Question:   t.Poll.Question,
			CreatedBy:  t.Poll.CreatedBy,
			CreatedAt:  t.Poll.CreatedAt,
			Status:     t.Poll.Status,
			Options:    options,
			TotalVotes: t.TotalVotes,
			MyVote:     VoteOf(t.Poll.Options, memberID),
		})
	}

	suggestions := make([]models.SuggestionView, 0, len(b.Suggestions))
	for _, s := range b.Suggestions {
		suggestions = append(suggestions, models.SuggestionView{
			ID:         s.ID,
			Text:       s.Text,
			AuthorName: s.AuthorName,
			CreatedAt:  s.CreatedAt,
		})
	}

	return models.BoardResponse{
		Polls:       polls,
		Suggestions: suggestions,
		CanManage:   sess.IsCommitteePlus,
		CanModerate: sess.IsOfficer,
		IsExpired:   sess.IsExpired,
	}
}
