// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bonsaisite/internal/session"
)

// newTestSession creates a session.Data value suitable for testing.
func newTestSession() *session.Data {
	return &session.Data{
		MemberID:    "mem-aiko",
		DisplayName: "Aiko Tanaka",
	}
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

// ---------- SessionFromCtx ----------

func TestSessionFromCtx(t *testing.T) {
	t.Run("returns session when present", func(t *testing.T) {
		sess := newTestSession()
		ctx := WithSession(context.Background(), sess)

		got := SessionFromCtx(ctx)
		if got == nil {
			t.Fatal("expected non-nil session, got nil")
		}
		if got.MemberID != sess.MemberID {
			t.Errorf("MemberID: got %q, want %q", got.MemberID, sess.MemberID)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		if got := SessionFromCtx(context.Background()); got != nil {
			t.Errorf("expected nil session, got %+v", got)
		}
	})

	t.Run("returns nil for wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), SessionKey, "not-a-session")
		if got := SessionFromCtx(ctx); got != nil {
			t.Errorf("expected nil for wrong type, got %+v", got)
		}
	})
}

// ---------- ActorFromCtx ----------

func TestActorFromCtx(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		actor := ActorFromCtx(WithSession(context.Background(), newTestSession()))
		if actor == nil {
			t.Fatal("expected an actor")
		}
		if actor.ID != "mem-aiko" || actor.DisplayName != "Aiko Tanaka" {
			t.Errorf("actor: got %+v", actor)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		if actor := ActorFromCtx(context.Background()); actor != nil {
			t.Errorf("expected nil actor, got %+v", actor)
		}
	})
}

// ---------- LoadSession ----------

func TestLoadSessionWithoutCookie(t *testing.T) {
	// Without a cookie the store never reaches Valkey, so a store with no
	// client is enough here.
	store := session.NewStore(nil, false)

	var got *session.Data
	inner, called := okHandler()
	handler := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		inner.ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/forum/categories", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !*called {
		t.Error("next handler should have been called")
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}
