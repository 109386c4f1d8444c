// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package corner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/memberscorner/models"
	"github.com/danielhkuo/memberscorner/store"
)

const activityWriteTimeout = 10 * time.Second

// ActivityLogger appends committee and officer actions to the activity log.
// Writes are fire-and-forget: failures are logged and counted, never
// returned or retried.
type ActivityLogger struct {
	store    store.Store
	wg       sync.WaitGroup
	failures prometheus.Counter
}

// NewActivityLogger registers its failure counter on reg when reg is non-nil.
func NewActivityLogger(s store.Store, reg prometheus.Registerer) *ActivityLogger {
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "memberscorner",
		Subsystem: "activity",
		Name:      "write_failures_total",
		Help:      "Activity log appends that failed and were dropped.",
	})
	if reg != nil {
		reg.MustRegister(failures)
	}
	return &ActivityLogger{store: s, failures: failures}
}

// Log appends an entry attributed to the session's profile. Without a
// profile it does nothing. The write outlives ctx's cancellation.
func (l *ActivityLogger) Log(ctx context.Context, sess models.Session, action, details string) {
	if sess.Profile == nil {
		return
	}

	fields := activityFields(action, details, sess.Profile)
	ctx = context.WithoutCancel(ctx)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, activityWriteTimeout)
		defer cancel()

		if _, err := l.store.Add(ctx, models.CollectionActivityLog, fields); err != nil {
			l.failures.Inc()
			slog.Warn("failed to write activity log", "action", action, "error", err)
		}
	}()
}

// Wait blocks until all pending appends have finished.
func (l *ActivityLogger) Wait() {
	l.wg.Wait()
}
