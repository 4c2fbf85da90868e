// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package docstore is the document-database collaborator the catalogs load
// from and persist writes to. A collection holds JSON documents of one record
// type and supports equality filters, ordering by one field, and
// insert/update/get by id. Field names are the documents' JSON keys.
//
// Two implementations share these semantics: Memory keeps documents in
// process, Postgres keeps them as JSONB rows in a single documents table.
// Guarded wraps either one in a circuit breaker.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateID is returned by Insert when the id is already taken.
	ErrDuplicateID = errors.New("docstore: duplicate id")

	// ErrNoDocument is returned by Update when no document has the id.
	ErrNoDocument = errors.New("docstore: no such document")
)

// Document is a record with a stable identity.
type Document interface {
	DocID() string
}

// Filter matches documents whose field equals Value once both are encoded
// as JSON.
type Filter struct {
	Field string
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Query selects documents from a collection. Filters are combined with AND.
// Without a SortField, documents come back in insertion order. Documents
// missing the sort field come last in either direction. A Limit of zero
// means unlimited.
type Query struct {
	Filters    []Filter
	SortField  string
	Descending bool
	Limit      int
}

// Collection is a named set of documents of type T.
type Collection[T Document] interface {
	// Name returns the collection name.
	Name() string

	// Find returns the documents matching q.
	Find(ctx context.Context, q Query) ([]T, error)

	// Get returns the document with the id, or nil if there is none.
	Get(ctx context.Context, id string) (*T, error)

	// Insert adds a new document.
	Insert(ctx context.Context, doc T) error

	// Update replaces an existing document.
	Update(ctx context.Context, doc T) error

	// Count returns how many documents the collection holds.
	Count(ctx context.Context) (int, error)
}
