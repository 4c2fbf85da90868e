// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events serves the society calendar.
package events

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"bonsaisite/internal/models"
)

// Catalog holds events in memory. It is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	events []models.Event
}

// New creates a catalog over a copy of events.
func New(events []models.Event) *Catalog {
	return &Catalog{events: slices.Clone(events)}
}

// ListEvents returns every event in source order.
func (c *Catalog) ListEvents() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Event{}, c.events...)
}

// Upcoming returns events that have not finished by now, soonest first.
// A limit of zero or less returns them all.
func (c *Catalog) Upcoming(now time.Time, limit int) []models.Event {
	c.mu.RLock()
	out := []models.Event{}
	for _, e := range c.events {
		if !e.EndsAt().Before(now) {
			out = append(out, e)
		}
	}
	c.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.Event) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GetEventByID returns the event with the id.
func (c *Catalog) GetEventByID(id string) (models.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}
