// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bonsaisite/internal/events"
)

// Events groups the event calendar handlers.
type Events struct {
	catalog *events.Catalog
	now     func() time.Time
}

// NewEvents creates an Events handler group.
func NewEvents(c *events.Catalog) *Events {
	return &Events{catalog: c, now: time.Now}
}

// ListEvents returns every event, or with ?upcoming=true only those not
// yet over, soonest first.
func (e *Events) ListEvents(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("upcoming") != "true" {
		writeJSON(w, http.StatusOK, e.catalog.ListEvents())
		return
	}
	limit, msg := queryInt(r, "limit", 0, maxPageLimit)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	writeJSON(w, http.StatusOK, e.catalog.Upcoming(e.now(), limit))
}

// GetEvent returns one event.
func (e *Events) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ev, ok := e.catalog.GetEventByID(id)
	if !ok {
		writeNotFound(w, "event", id)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}
