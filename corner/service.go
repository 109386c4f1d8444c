// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/store"
)

// Service runs the poll and suggestion operations against the collection
// store. Every operation takes the caller's session explicitly.
type Service struct {
	store    store.Store
	activity *ActivityLogger
}

func NewService(s store.Store, activity *ActivityLogger) *Service {
	return &Service{store: s, activity: activity}
}

// CreatePoll validates and stores a new poll and returns its id.
func (s *Service) CreatePoll(ctx context.Context, sess models.Session, question string, optionTexts []string) (string, error) {
	if !sess.IsCommitteePlus {
		return "", ErrNotCommittee
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	options := NormalizeOptions(optionTexts)
	if len(options) < 2 {
		return "", ErrTooFewOptions
	}

	createdBy := ""
	if sess.Profile != nil {
		createdBy = sess.Profile.Name
	}

	pollID, err := s.store.Add(ctx, models.CollectionPolls, pollFields(question, options, createdBy))
	if err != nil {
		return "", fmt.Errorf("failed to create poll: %w", err)
	}

	slog.Info("poll created", "poll_id", pollID, "creator", createdBy, "options", len(options))
	s.activity.Log(ctx, sess, models.ActionCreatePoll, "Question: "+question)

	return pollID, nil
}

// DeletePoll removes a poll. The caller must have confirmed the deletion.
func (s *Service) DeletePoll(ctx context.Context, sess models.Session, pollID string, confirmed bool) error {
	if !sess.IsCommitteePlus {
		return ErrNotCommittee
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.store.Delete(ctx, models.CollectionPolls, pollID); err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}

	slog.Info("poll deleted", "poll_id", pollID)
	s.activity.Log(ctx, sess, models.ActionDeletePoll, "Poll ID: "+pollID)

	return nil
}

// CastVote records the caller's single vote on a poll, moving it when the
// caller had already voted. An unknown poll is silently ignored.
func (s *Service) CastVote(ctx context.Context, sess models.Session, pollID string, optionID int) error {
	if sess.IsExpired {
		return ErrMembershipExpired
	}
	voterID := sess.MemberID()
	if voterID == "" {
		return ErrNoProfile
	}

	err := s.store.Update(ctx, models.CollectionPolls, pollID, func(doc store.Document) (store.Fields, error) {
		var poll models.Poll
		if err := doc.DataTo(&poll); err != nil {
			return nil, err
		}
		if !hasOption(poll.Options, optionID) {
			return nil, ErrNoSuchOption
		}
		return store.Fields{
			"options": optionFields(ApplyVote(poll.Options, optionID, voterID)),
		}, nil
	})
	if errors.Is(err, store.ErrNotFound) {
		slog.Debug("vote on unknown poll ignored", "poll_id", pollID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	slog.Info("vote cast", "poll_id", pollID, "option_id", optionID)
	return nil
}

// SubmitSuggestion stores an anonymous suggestion and returns its id.
func (s *Service) SubmitSuggestion(ctx context.Context, sess models.Session, text string) (string, error) {
	if sess.IsExpired {
		return "", ErrMembershipExpired
	}
	authorID := sess.MemberID()
	if authorID == "" {
		return "", ErrNoProfile
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptySuggestion
	}

	id, err := s.store.Add(ctx, models.CollectionSuggestions, suggestionFields(text, authorID))
	if err != nil {
		return "", fmt.Errorf("failed to submit suggestion: %w", err)
	}

	slog.Info("suggestion submitted", "suggestion_id", id)
	return id, nil
}

// DeleteSuggestion removes a suggestion. Officers only, after confirmation.
func (s *Service) DeleteSuggestion(ctx context.Context, sess models.Session, suggestionID string, confirmed bool) error {
	if !sess.IsOfficer {
		return ErrNotOfficer
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.store.Delete(ctx, models.CollectionSuggestions, suggestionID); err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	slog.Info("suggestion deleted", "suggestion_id", suggestionID)
	s.activity.Log(ctx, sess, models.ActionDeleteSuggestion, "Suggestion ID: "+suggestionID)

	return nil
}
