// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"bonsaisite/internal/cache"
	"bonsaisite/internal/search"
)

// Search serves the site-wide search.
type Search struct {
	aggregator *search.Aggregator
	cache      *cache.ResponseCache
}

// NewSearch creates a Search handler. rc may be nil.
func NewSearch(a *search.Aggregator, rc *cache.ResponseCache) *Search {
	return &Search{aggregator: a, cache: rc}
}

// SearchAll runs ?q= across events, articles and resources. A blank
// query returns three empty lists.
func (s *Search) SearchAll(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if msg := validateQuery(q); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	key := cache.SearchKey(q)
	if q != "" {
		if body, ok := s.cache.Get(ctx, key); ok {
			w.Header().Set("X-Cache", "HIT")
			writeBody(w, http.StatusOK, body)
			return
		}
	}

	results, err := s.aggregator.SearchAll(ctx, q)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	body, err := json.Marshal(results)
	if err != nil {
		slog.Error("encode search results failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if q != "" && !results.Partial {
		s.cache.Set(ctx, key, body)
	}
	writeBody(w, http.StatusOK, body)
}
