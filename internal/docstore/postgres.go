// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Postgres is a Collection stored in the documents table (see the
// database migrations). Equality filters use JSONB containment, so the GIN
// index on body serves them.
type Postgres[T Document] struct {
	db   *sql.DB
	name string
}

// NewPostgres returns the named collection backed by db.
func NewPostgres[T Document](db *sql.DB, name string) *Postgres[T] {
	return &Postgres[T]{db: db, name: name}
}

// Name returns the collection name.
func (p *Postgres[T]) Name() string { return p.name }

// Find returns the documents matching q.
func (p *Postgres[T]) Find(ctx context.Context, q Query) ([]T, error) {
	contains := make(map[string]any, len(q.Filters))
	for _, f := range q.Filters {
		contains[f.Field] = f.Value
	}
	filter, err := json.Marshal(contains)
	if err != nil {
		return nil, fmt.Errorf("%s: encode filter: %w", p.name, err)
	}

	args := []any{p.name, string(filter)}

	// The direction is not user input; the sort field is bound as a parameter.
	order := "seq"
	if q.SortField != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		args = append(args, q.SortField)
		order = fmt.Sprintf("body -> $%d::text %s NULLS LAST, seq", len(args), dir)
	}
	limit := ""
	if q.Limit > 0 {
		args = append(args, q.Limit)
		limit = fmt.Sprintf("LIMIT $%d", len(args))
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT body FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY `+order+`
		`+limit, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", p.name, err)
	}
	defer rows.Close()

	var docs []T
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", p.name, err)
		}
		var doc T
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.name, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Get returns the document with the id. Returns nil if not found.
func (p *Postgres[T]) Get(ctx context.Context, id string) (*T, error) {
	var body []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT body FROM documents WHERE collection = $1 AND id = $2
	`, p.name, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", p.name, id, err)
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s %q: %w", p.name, id, err)
	}
	return &doc, nil
}

// Insert adds a new document.
func (p *Postgres[T]) Insert(ctx context.Context, doc T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.name, err)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3)
	`, p.name, doc.DocID(), string(body))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s %q: %w", p.name, doc.DocID(), ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", p.name, err)
	}
	return nil
}

// Update replaces an existing document.
func (p *Postgres[T]) Update(ctx context.Context, doc T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.name, err)
	}
	res, err := p.db.ExecContext(ctx, `
		UPDATE documents SET body = $3, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`, p.name, doc.DocID(), string(body))
	if err != nil {
		return fmt.Errorf("update %s: %w", p.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", p.name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", p.name, doc.DocID(), ErrNoDocument)
	}
	return nil
}

// Count returns the number of documents in the collection.
func (p *Postgres[T]) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents WHERE collection = $1
	`, p.name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", p.name, err)
	}
	return n, nil
}
