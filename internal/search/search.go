// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package search runs the site-wide search across events, articles and
// resources.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/learning"
	"bonsaisite/internal/metrics"
	"bonsaisite/internal/models"
)

// EventSource lists events in calendar order.
type EventSource interface {
	ListEvents() []models.Event
}

// ArticleSource lists articles, newest first.
type ArticleSource interface {
	ListArticles(f learning.Filter) []models.Article
}

// ResourceSource lists resources.
type ResourceSource interface {
	ListResources() []models.Resource
}

// Results holds one bucket per record type. Buckets are never nil.
type Results struct {
	Events    []models.Event    `json:"events"`
	Articles  []models.Article  `json:"articles"`
	Resources []models.Resource `json:"resources"`

	// Partial is set when a bucket is empty because its sub-search failed.
	Partial bool `json:"partial,omitempty"`
}

func emptyResults() Results {
	return Results{
		Events:    []models.Event{},
		Articles:  []models.Article{},
		Resources: []models.Resource{},
	}
}

// Aggregator fans a query out to its sources.
type Aggregator struct {
	events    EventSource
	articles  ArticleSource
	resources ResourceSource
}

// New creates an Aggregator over the given sources.
func New(events EventSource, articles ArticleSource, resources ResourceSource) *Aggregator {
	return &Aggregator{events: events, articles: articles, resources: resources}
}

// SearchAll matches query, case-insensitively, against every event title,
// description and tag, every article title, content and tag, and every
// resource name and description. The three searches run concurrently and
// each bucket keeps its source's order.
//
// A blank query returns empty buckets without touching any source. A
// sub-search that fails leaves its bucket empty and the others intact; the
// call as a whole fails only when ctx is done.
func (a *Aggregator) SearchAll(ctx context.Context, query string) (Results, error) {
	res := emptyResults()

	if strings.TrimSpace(query) == "" {
		metrics.SearchQueries.WithLabelValues("blank").Inc()
		return res, nil
	}
	needle := catalog.Fold(query)

	var failed atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return run(gctx, "events", &res.Events, &failed, func() []models.Event {
			return matchEvents(a.events.ListEvents(), needle)
		})
	})
	g.Go(func() error {
		return run(gctx, "articles", &res.Articles, &failed, func() []models.Article {
			return matchArticles(a.articles.ListArticles(learning.Filter{}), needle)
		})
	})
	g.Go(func() error {
		return run(gctx, "resources", &res.Resources, &failed, func() []models.Resource {
			return matchResources(a.resources.ListResources(), needle)
		})
	})

	if err := g.Wait(); err != nil {
		return emptyResults(), fmt.Errorf("search %q: %w", query, err)
	}
	res.Partial = failed.Load()
	metrics.SearchQueries.WithLabelValues("ok").Inc()
	return res, nil
}

// run fills *bucket with the result of fn. A panic in fn degrades the
// bucket to empty and sets failed; only a done context is returned as an
// error.
func run[T any](ctx context.Context, name string, bucket *[]T, failed *atomic.Bool, fn func() []T) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("search bucket failed", "bucket", name, "panic", r)
			metrics.SearchBucketFailures.WithLabelValues(name).Inc()
			*bucket = []T{}
			failed.Store(true)
			err = nil
		}
	}()

	found := fn()
	if err := ctx.Err(); err != nil {
		return err
	}
	if found != nil {
		*bucket = found
	}
	return nil
}

func matchEvents(events []models.Event, needle string) []models.Event {
	out := []models.Event{}
	for _, e := range events {
		if catalog.Contains(e.Title, needle) ||
			catalog.Contains(e.Description, needle) ||
			catalog.AnyContains(e.Tags, needle) {
			out = append(out, e)
		}
	}
	return out
}

func matchArticles(articles []models.Article, needle string) []models.Article {
	out := []models.Article{}
	for _, a := range articles {
		if catalog.Contains(a.Title, needle) ||
			catalog.Contains(a.Content, needle) ||
			catalog.AnyContains(a.Tags, needle) {
			out = append(out, a)
		}
	}
	return out
}

func matchResources(resources []models.Resource, needle string) []models.Resource {
	out := []models.Resource{}
	for _, r := range resources {
		if catalog.Contains(r.Name, needle) || catalog.Contains(r.Description, needle) {
			out = append(out, r)
		}
	}
	return out
}
