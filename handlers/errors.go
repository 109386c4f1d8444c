// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/memberscorner/auth"
	"github.com/danielhkuo/memberscorner/corner"
	"github.com/danielhkuo/memberscorner/middleware"
	"github.com/danielhkuo/memberscorner/models"
)

// requireSession reads the signed session or writes a 401.
// The bool is false when the response has already been written.
func requireSession(w http.ResponseWriter, r *http.Request, secret string) (models.Session, bool) {
	sess, err := auth.SessionFromRequest(r, secret)
	if err != nil {
		slog.Warn("session rejected", "error", err, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return models.Session{}, false
	}
	return sess, true
}

// writeServiceError maps a corner.Service error onto an HTTP status.
// Store failures are logged and reported with the generic message.
func writeServiceError(w http.ResponseWriter, err error, generic string) {
	switch {
	case corner.IsValidation(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case corner.IsForbidden(err):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, corner.ErrConfirmationRequired):
		middleware.ErrorResponse(w, http.StatusPreconditionRequired, "Pass confirm=true to delete")
	default:
		slog.Error(generic, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, generic)
	}
}

// confirmed reports whether the request carries ?confirm=true
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
