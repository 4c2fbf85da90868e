// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Catalogs are built from the embedded fixtures; tests that need Valkey
// are skipped when it is unavailable.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"bonsaisite/internal/cache"
	"bonsaisite/internal/dataset"
	"bonsaisite/internal/events"
	"bonsaisite/internal/forum"
	"bonsaisite/internal/gallery"
	"bonsaisite/internal/learning"
	"bonsaisite/internal/members"
	"bonsaisite/internal/middleware"
	"bonsaisite/internal/search"
	"bonsaisite/internal/session"
)

// testPassword is assigned to every fixture member.
const testPassword = "juniper-moss"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "resp:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// fakeSessions is an in-memory Sessions implementation.
type fakeSessions struct {
	created   []*session.Data
	destroyed int
}

func (f *fakeSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	f.created = append(f.created, data)
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "test-session", Path: "/"})
	return "test-session", nil
}

func (f *fakeSessions) Destroy(_ context.Context, w http.ResponseWriter, _ *http.Request) error {
	f.destroyed++
	return nil
}

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Galleries *gallery.Catalog
	Learning  *learning.Catalog
	Events    *events.Catalog
	Forum     *forum.Catalog
	Members   *members.Directory
	Sessions  *fakeSessions

	Gallery   *Gallery
	LearningH *Learning
	EventsH   *Events
	ForumH    *Forum
	Search    *Search
	MembersH  *Members
	Auth      *Auth
}

// newTestEnv builds every handler group over a fresh copy of the
// fixtures. rc may be nil.
func newTestEnv(t *testing.T, rc *cache.ResponseCache) *testEnv {
	t.Helper()

	d, err := dataset.Fixtures()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	if _, err := d.AssignDevPasswords(testPassword, bcrypt.MinCost); err != nil {
		t.Fatalf("assign passwords: %v", err)
	}

	galleries := gallery.New(d.Galleries, d.Photos)
	learn := learning.New(d.Articles, d.Resources, d.Vendors)
	evs := events.New(d.Events)
	fc := forum.New(d.ForumCategories, d.ForumPosts)
	dir, err := members.New(d.Members)
	if err != nil {
		t.Fatalf("members.New: %v", err)
	}
	sessions := &fakeSessions{}

	evh := NewEvents(evs)
	evh.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }

	return &testEnv{
		Galleries: galleries,
		Learning:  learn,
		Events:    evs,
		Forum:     fc,
		Members:   dir,
		Sessions:  sessions,

		Gallery:   NewGallery(galleries, nil),
		LearningH: NewLearning(learn),
		EventsH:   evh,
		ForumH:    NewForum(fc, rc),
		Search:    NewSearch(search.New(evs, learn, learn), rc),
		MembersH:  NewMembers(dir),
		Auth:      NewAuth(sessions, dir),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return middleware.WithSession(ctx, data)
}

// testSession returns the session of the fixture member Aiko.
func testSession() *session.Data {
	return &session.Data{MemberID: "mem-aiko", DisplayName: "Aiko Tanaka"}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serve runs one handler against a request and returns the recorder.
func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, r)
	return rr
}

// decodeBody decodes a JSON response body into a T.
func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

// assertStatus fails the test when the recorder has an unexpected code.
func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}

// assertErrorBody checks for the JSON error shape.
func assertErrorBody(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if body := decodeBody[errorBody](t, rr); body.Error == "" {
		t.Errorf("empty error message in %s", rr.Body.String())
	}
}
