// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/members"
	"bonsaisite/internal/middleware"
	"bonsaisite/internal/session"
)

// Sessions is the part of session.Store the sign-in handlers need.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups the member sign-in handlers.
type Auth struct {
	sessions  Sessions
	directory *members.Directory
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions Sessions, directory *members.Directory) *Auth {
	return &Auth{sessions: sessions, directory: directory}
}

// signInRequest is the body of POST /api/session.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn checks a member's credentials and starts a session.
func (a *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	actor, err := a.directory.Authenticate(req.Email, req.Password)
	if errors.Is(err, catalog.ErrAuthRequired) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		slog.Error("sign-in failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		MemberID:    actor.ID,
		DisplayName: actor.DisplayName,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("member signed in", "member_id", actor.ID)
	writeJSON(w, http.StatusOK, actor)
}

// CurrentSession returns the signed-in member.
func (a *Auth) CurrentSession(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromCtx(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, actor)
}

// csrfTokenResponse is the body of GET /api/session/csrf.
type csrfTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// CSRFToken hands the request's CSRF token to clients that cannot read the
// token cookie. Writes must echo it in the X-CSRF-Token header.
func (a *Auth) CSRFToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, csrfTokenResponse{CSRFToken: middleware.CSRFTokenFromCtx(r.Context())})
}

// SignOut ends the current session. It succeeds when there is none.
func (a *Auth) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
