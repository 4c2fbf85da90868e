// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation limits for query parameters and request bodies.
const (
	maxPageLimit   = 100
	maxQueryLen    = 200
	maxEmailLen    = 254
	maxPasswordLen = 72 // bcrypt ignores anything longer
	maxBodyBytes   = 64 << 10
)

// queryInt reads a non-negative integer query parameter, returning def
// when it is absent. The message is empty when the value is acceptable.
func queryInt(r *http.Request, name string, def, max int) (int, string) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, name + " must be a non-negative integer"
	}
	if max > 0 && n > max {
		return 0, name + " must be at most " + strconv.Itoa(max)
	}
	return n, ""
}

// validateQuery checks a free-text search parameter.
func validateQuery(q string) string {
	if utf8.RuneCountInString(q) > maxQueryLen {
		return "q is too long (max 200 characters)"
	}
	return ""
}

// validateCredentials checks a sign-in request and returns the first error found.
func validateCredentials(email, password string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if len(email) > maxEmailLen || !strings.Contains(email, "@") {
		return "email is not valid"
	}
	if password == "" {
		return "password is required"
	}
	if len(password) > maxPasswordLen {
		return "password is too long"
	}
	return ""
}
