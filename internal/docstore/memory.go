// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// Memory is an in-process Collection. Documents are stored encoded, so
// callers never share memory with the collection.
type Memory[T Document] struct {
	name string

	mu   sync.RWMutex
	docs []memDoc
	byID map[string]int
}

type memDoc struct {
	id   string
	body []byte
}

// NewMemory creates an in-process collection seeded with docs in order.
func NewMemory[T Document](name string, docs ...T) (*Memory[T], error) {
	m := &Memory[T]{name: name, byID: make(map[string]int, len(docs))}
	for _, d := range docs {
		if err := m.Insert(context.Background(), d); err != nil {
			return nil, fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return m, nil
}

// Name returns the collection name.
func (m *Memory[T]) Name() string { return m.name }

// Count returns how many documents the collection holds.
func (m *Memory[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs), nil
}

// Find returns the documents matching q.
func (m *Memory[T]) Find(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filters := make([]normalizedFilter, 0, len(q.Filters))
	for _, f := range q.Filters {
		v, err := normalize(f.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: filter %s: %w", m.name, f.Field, err)
		}
		filters = append(filters, normalizedFilter{field: f.Field, value: v})
	}

	m.mu.RLock()
	snapshot := slices.Clone(m.docs)
	m.mu.RUnlock()

	type hit struct {
		fields map[string]any
		body   []byte
	}
	var hits []hit
	for _, d := range snapshot {
		var fields map[string]any
		if err := json.Unmarshal(d.body, &fields); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", m.name, d.id, err)
		}
		if matches(fields, filters) {
			hits = append(hits, hit{fields: fields, body: d.body})
		}
	}

	if q.SortField != "" {
		slices.SortStableFunc(hits, func(a, b hit) int {
			return compareField(a.fields, b.fields, q.SortField, q.Descending)
		})
	}
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}

	out := make([]T, 0, len(hits))
	for _, h := range hits {
		var doc T
		if err := json.Unmarshal(h.body, &doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", m.name, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// compareField orders two documents by one field. Missing values sort last
// regardless of direction.
func compareField(a, b map[string]any, field string, desc bool) int {
	av, aok := a[field]
	bv, bok := b[field]
	aok = aok && av != nil
	bok = bok && bv != nil
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	c := compareValues(av, bv)
	if desc {
		return -c
	}
	return c
}

// Get returns the document with the id, or nil if there is none.
func (m *Memory[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	i, ok := m.byID[id]
	var body []byte
	if ok {
		body = m.docs[i].body
	}
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", m.name, id, err)
	}
	return &doc, nil
}

// Insert adds a new document.
func (m *Memory[T]) Insert(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", m.name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := doc.DocID()
	if _, exists := m.byID[id]; exists {
		return fmt.Errorf("%s %q: %w", m.name, id, ErrDuplicateID)
	}
	m.byID[id] = len(m.docs)
	m.docs = append(m.docs, memDoc{id: id, body: body})
	return nil
}

// Update replaces an existing document.
func (m *Memory[T]) Update(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", m.name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := doc.DocID()
	i, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%s %q: %w", m.name, id, ErrNoDocument)
	}
	m.docs[i].body = body
	return nil
}
