// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bonsaisite/internal/search"
)

func TestSearchAll(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("blank query", func(t *testing.T) {
		rr := serve(env.Search.SearchAll, httptest.NewRequest("GET", "/api/search?q=%20%20", nil))
		assertStatus(t, rr, http.StatusOK)
		if body := rr.Body.String(); body != `{"events":[],"articles":[],"resources":[]}` {
			t.Errorf("body: got %s", body)
		}
	})

	t.Run("matches every bucket", func(t *testing.T) {
		rr := serve(env.Search.SearchAll, httptest.NewRequest("GET", "/api/search?q=Soil", nil))
		assertStatus(t, rr, http.StatusOK)

		res := decodeBody[search.Results](t, rr)
		if got := eventIDs(res.Events); got != "evt-repotting-night" {
			t.Errorf("events: got %s", got)
		}
		if len(res.Articles) != 2 {
			t.Errorf("got %d articles, want 2", len(res.Articles))
		}
		found := false
		for _, r := range res.Resources {
			found = found || r.ID == "res-soil-calculator"
		}
		if !found {
			t.Errorf("resources: %+v", res.Resources)
		}
	})

	t.Run("query too long", func(t *testing.T) {
		rr := serve(env.Search.SearchAll, httptest.NewRequest("GET", "/api/search?q="+strings.Repeat("q", 201), nil))
		assertStatus(t, rr, http.StatusBadRequest)
		assertErrorBody(t, rr)
	})

	t.Run("client gone", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := httptest.NewRequest("GET", "/api/search?q=maple", nil).WithContext(ctx)
		rr := serve(env.Search.SearchAll, r)
		assertStatus(t, rr, http.StatusServiceUnavailable)
	})
}
