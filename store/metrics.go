// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumented struct {
	Store
	ops     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// Instrument wraps s so every call is counted and timed. Collectors are
// registered on reg.
func Instrument(s Store, reg prometheus.Registerer) Store {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "memberscorner",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Collection store operations by result.",
	}, []string{"op", "collection", "result"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "memberscorner",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Collection store operation latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "collection"})
	reg.MustRegister(ops, latency)

	return &instrumented{Store: s, ops: ops, latency: latency}
}

func (s *instrumented) observe(op, collection string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	s.ops.WithLabelValues(op, collection, result).Inc()
	s.latency.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
}

func (s *instrumented) Add(ctx context.Context, collection string, data Fields) (string, error) {
	start := time.Now()
	id, err := s.Store.Add(ctx, collection, data)
	s.observe("add", collection, start, err)
	return id, err
}

func (s *instrumented) Get(ctx context.Context, collection, id string) (Document, error) {
	start := time.Now()
	doc, err := s.Store.Get(ctx, collection, id)
	s.observe("get", collection, start, err)
	return doc, err
}

func (s *instrumented) List(ctx context.Context, collection string) ([]Document, error) {
	start := time.Now()
	docs, err := s.Store.List(ctx, collection)
	s.observe("list", collection, start, err)
	return docs, err
}

func (s *instrumented) Update(ctx context.Context, collection, id string, fn UpdateFunc) error {
	start := time.Now()
	err := s.Store.Update(ctx, collection, id, fn)
	s.observe("update", collection, start, err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, collection, id string) error {
	start := time.Now()
	err := s.Store.Delete(ctx, collection, id)
	s.observe("delete", collection, start, err)
	return err
}
