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

type SuggestionHandler struct {
	svc *corner.Service
	cfg cliparse.Config
}

func NewSuggestionHandler(svc *corner.Service, cfg cliparse.Config) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, cfg: cfg}
}

// SubmitSuggestion handles POST /suggestions
func (h *SuggestionHandler) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	var req models.SubmitSuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.svc.SubmitSuggestion(r.Context(), sess, req.Text)
	if err != nil {
		writeServiceError(w, err, "Failed to submit suggestion")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitSuggestionResponse{
		SuggestionID: id,
		Message:      "Suggestion submitted anonymously",
	})
}

// DeleteSuggestion handles DELETE /suggestions/{id}?confirm=true
func (h *SuggestionHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteSuggestion(r.Context(), sess, id, confirmed(r)); err != nil {
		writeServiceError(w, err, "Failed to delete suggestion")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Suggestion deleted",
	})
}
