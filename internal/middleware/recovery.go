// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"bonsaisite/internal/metrics"
)

// Recoverer turns a handler panic into a JSON 500 and counts it against
// the route that panicked. http.ErrAbortHandler is re-raised so the
// server still aborts the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			route := routePattern(r)
			metrics.HTTPPanics.WithLabelValues(route).Inc()
			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"route", route,
				"stack", string(debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
