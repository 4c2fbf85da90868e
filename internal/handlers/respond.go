// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API. Handlers are grouped by
// catalog; each group only reads from or writes through its catalog and
// maps catalog errors onto HTTP status codes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"bonsaisite/internal/cache"
	"bonsaisite/internal/catalog"
)

// errorBody is the shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON marshals v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeBody(w, status, body)
}

// writeBody writes an already encoded JSON body.
func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(errorBody{Error: msg})
	writeBody(w, status, body)
}

// writeCatalogError maps an error returned by a catalog write to a status.
func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *catalog.ValidationError
		nerr *catalog.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, catalog.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, catalog.ErrAuthRequired):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.As(err, &nerr):
		writeError(w, http.StatusNotFound, nerr.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, catalog.ErrUpstreamUnavailable):
		slog.Warn("upstream unavailable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request canceled")
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeNotFound writes a 404 naming the missing resource.
func writeNotFound(w http.ResponseWriter, resource, id string) {
	writeError(w, http.StatusNotFound, (&catalog.NotFoundError{Resource: resource, ID: id}).Error())
}

// serveCached answers from the response cache when it can, otherwise
// builds the value, encodes it, stores it and writes it.
func serveCached(w http.ResponseWriter, r *http.Request, rc *cache.ResponseCache, key string, build func() any) {
	ctx := r.Context()
	if body, ok := rc.Get(ctx, key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeBody(w, http.StatusOK, body)
		return
	}

	body, err := json.Marshal(build())
	if err != nil {
		slog.Error("encode response failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	rc.Set(ctx, key, body)
	w.Header().Set("X-Cache", "MISS")
	writeBody(w, http.StatusOK, body)
}

// decodeJSON reads a size-limited JSON request body into dst. Unknown
// fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body too large")
		case errors.Is(err, io.EOF):
			return fmt.Errorf("request body is empty")
		default:
			return fmt.Errorf("malformed request body")
		}
	}
	if dec.More() {
		return fmt.Errorf("request body must hold a single JSON object")
	}
	return nil
}
