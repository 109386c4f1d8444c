// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/memberscorner/cliparse"
	"github.com/danielhkuo/memberscorner/corner"
	"github.com/danielhkuo/memberscorner/middleware"
)

// streamKeepAlive is how often an idle stream sends a comment line
const streamKeepAlive = 25 * time.Second

type CornerHandler struct {
	feed *corner.Feed
	cfg  cliparse.Config
}

func NewCornerHandler(feed *corner.Feed, cfg cliparse.Config) *CornerHandler {
	return &CornerHandler{feed: feed, cfg: cfg}
}

// GetBoard handles GET /corner
// Returns the latest board as seen by the caller
func (h *CornerHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.feed.Board().View(sess))
}

// Stream handles GET /corner/stream
// Sends the caller's view of every new board as a server-sent event
func (h *CornerHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r, h.cfg.SessionSecret)
	if !ok {
		return
	}

	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	boards, cancel := h.feed.Subscribe()
	defer cancel()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		case board, ok := <-boards:
			if !ok {
				return
			}
			payload, err := json.Marshal(board.View(sess))
			if err != nil {
				slog.Error("failed to encode board", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: board\ndata: %s\n\n", payload); err != nil {
				return
			}
		}

		if err := rc.Flush(); err != nil {
			slog.Debug("stream flush failed", "error", err)
			return
		}
	}
}
