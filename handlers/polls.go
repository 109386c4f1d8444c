// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/memberscorner/cliparse"
	"github.com/danielhkuo/memberscorner/corner"
	"github.com/danielhkuo/memberscorner/middleware"
	"github.com/danielhkuo/memberscorner/models"
)

type PollHandler struct {
	svc *corner.Service
	cfg cliparse.Config
}

func NewPollHandler(svc *corner.Service, cfg cliparse.Config) *PollHandler {
	return &PollHandler{svc: svc, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pollID, err := h.svc.CreatePoll(r.Context(), sess, req.Question, req.Options)
	if err != nil {
		writeServiceError(w, err, "Failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: pollID,
	})
}

// CastVote handles POST /polls/{id}/votes
func (h *PollHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	pollID := chi.URLParam(r, "id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.CastVote(r.Context(), sess, pollID, req.OptionID); err != nil {
		writeServiceError(w, err, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Vote recorded",
	})
}

// DeletePoll handles DELETE /polls/{id}?confirm=true
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	pollID := chi.URLParam(r, "id")
	if err := h.svc.DeletePoll(r.Context(), sess, pollID, confirmed(r)); err != nil {
		writeServiceError(w, err, "Failed to delete poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Poll deleted",
	})
}
