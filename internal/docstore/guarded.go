// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/metrics"
)

// BreakerSettings tunes the circuit breaker of a Guarded collection.
type BreakerSettings struct {
	MaxRequests uint32        // calls let through while half-open
	Interval    time.Duration // closed-state window for clearing counts
	Timeout     time.Duration // how long the breaker stays open
	MinRequests uint32        // calls needed before the failure ratio counts
	FailureRate float64       // ratio of failures that opens the breaker
}

// DefaultBreakerSettings trips after 5 calls at a 60% failure rate and
// lets a trial call through after 30 seconds.
var DefaultBreakerSettings = BreakerSettings{
	MaxRequests: 3,
	Interval:    10 * time.Second,
	Timeout:     30 * time.Second,
	MinRequests: 5,
	FailureRate: 0.6,
}

// Guarded wraps a Collection with a circuit breaker and call metrics. Any
// backend failure, including an open breaker, comes back wrapped in
// catalog.ErrUpstreamUnavailable. ErrDuplicateID and ErrNoDocument are
// caller mistakes; they pass through and do not count against the breaker.
type Guarded[T Document] struct {
	next Collection[T]
	cb   *gobreaker.CircuitBreaker
}

// Guard wraps next with a circuit breaker configured by s.
func Guard[T Document](next Collection[T], s BreakerSettings) *Guarded[T] {
	name := next.Name()
	metrics.BreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("docstore breaker state changed",
				"collection", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
		IsSuccessful: isCallerError,
	})
	return &Guarded[T]{next: next, cb: cb}
}

// isCallerError reports whether err should leave the breaker untouched.
func isCallerError(err error) bool {
	return err == nil ||
		errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrNoDocument) ||
		errors.Is(err, context.Canceled)
}

// Name returns the wrapped collection's name.
func (g *Guarded[T]) Name() string { return g.next.Name() }

// Find runs the wrapped Find through the breaker.
func (g *Guarded[T]) Find(ctx context.Context, q Query) ([]T, error) {
	res, err := g.call("find", func() (any, error) {
		return g.next.Find(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return res.([]T), nil
}

// Get runs the wrapped Get through the breaker.
func (g *Guarded[T]) Get(ctx context.Context, id string) (*T, error) {
	res, err := g.call("get", func() (any, error) {
		return g.next.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return res.(*T), nil
}

// Insert runs the wrapped Insert through the breaker.
func (g *Guarded[T]) Insert(ctx context.Context, doc T) error {
	_, err := g.call("insert", func() (any, error) {
		return nil, g.next.Insert(ctx, doc)
	})
	return err
}

// Update runs the wrapped Update through the breaker.
func (g *Guarded[T]) Update(ctx context.Context, doc T) error {
	_, err := g.call("update", func() (any, error) {
		return nil, g.next.Update(ctx, doc)
	})
	return err
}

// Count runs the wrapped Count through the breaker.
func (g *Guarded[T]) Count(ctx context.Context) (int, error) {
	res, err := g.call("count", func() (any, error) {
		return g.next.Count(ctx)
	})
	if err != nil {
		return 0, err
	}
	return res.(int), nil
}

func (g *Guarded[T]) call(op string, fn func() (any, error)) (any, error) {
	name := g.next.Name()
	start := time.Now()
	res, err := g.cb.Execute(fn)
	metrics.DocstoreDuration.WithLabelValues(name, op).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.DocstoreCalls.WithLabelValues(name, op, "ok").Inc()
		return res, nil
	case isCallerError(err):
		metrics.DocstoreCalls.WithLabelValues(name, op, "rejected").Inc()
		return nil, err
	default:
		metrics.DocstoreCalls.WithLabelValues(name, op, "error").Inc()
		return nil, catalog.Upstream(op+" "+name, err)
	}
}
