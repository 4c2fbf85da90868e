// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds what the gallery, learning, forum, event and member
// catalogs share: the error taxonomy, case-insensitive text matching and
// pagination. Read paths never return these errors; they signal absence with
// an empty slice or a false ok value. Write paths wrap them.
package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a lookup by id found no record.
	ErrNotFound = errors.New("not found")

	// ErrAuthRequired means a write was attempted without a signed-in actor.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation means required input was missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUpstreamUnavailable means the remote document store failed.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// NotFoundError names the resource and id that could not be resolved.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports the first invalid field of a write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Upstream wraps a document-store failure so that it matches
// ErrUpstreamUnavailable while keeping the cause.
func Upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUpstreamUnavailable, err)
}
