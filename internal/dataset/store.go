// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"bonsaisite/internal/docstore"
	"bonsaisite/internal/models"
)

// Stores holds one document collection per record type.
type Stores struct {
	Galleries       docstore.Collection[models.Gallery]
	Photos          docstore.Collection[models.Photo]
	Articles        docstore.Collection[models.Article]
	Resources       docstore.Collection[models.Resource]
	Vendors         docstore.Collection[models.Vendor]
	Events          docstore.Collection[models.Event]
	ForumCategories docstore.Collection[models.ForumCategory]
	ForumPosts      docstore.Collection[models.ForumPost]
	Members         docstore.Collection[models.Member]
}

// PostgresStores opens every collection in db's documents table, each
// behind its own circuit breaker.
func PostgresStores(db *sql.DB, s docstore.BreakerSettings) Stores {
	return Stores{
		Galleries:       guardedPostgres[models.Gallery](db, "galleries", s),
		Photos:          guardedPostgres[models.Photo](db, "photos", s),
		Articles:        guardedPostgres[models.Article](db, "articles", s),
		Resources:       guardedPostgres[models.Resource](db, "resources", s),
		Vendors:         guardedPostgres[models.Vendor](db, "vendors", s),
		Events:          guardedPostgres[models.Event](db, "events", s),
		ForumCategories: guardedPostgres[models.ForumCategory](db, "forum_categories", s),
		ForumPosts:      guardedPostgres[models.ForumPost](db, "forum_posts", s),
		Members:         guardedPostgres[models.Member](db, "members", s),
	}
}

func guardedPostgres[T docstore.Document](db *sql.DB, name string, s docstore.BreakerSettings) docstore.Collection[T] {
	return docstore.Guard[T](docstore.NewPostgres[T](db, name), s)
}

// FromStore reads every collection in insertion order. A collection that
// cannot be read is logged and left empty, so the site still starts with
// whatever the store could serve.
func FromStore(ctx context.Context, s Stores) *Dataset {
	return &Dataset{
		Galleries:       findAll(ctx, s.Galleries),
		Photos:          findAll(ctx, s.Photos),
		Articles:        findAll(ctx, s.Articles),
		Resources:       findAll(ctx, s.Resources),
		Vendors:         findAll(ctx, s.Vendors),
		Events:          findAll(ctx, s.Events),
		ForumCategories: findAll(ctx, s.ForumCategories),
		ForumPosts:      findAll(ctx, s.ForumPosts),
		Members:         findAll(ctx, s.Members),
	}
}

func findAll[T docstore.Document](ctx context.Context, c docstore.Collection[T]) []T {
	docs, err := c.Find(ctx, docstore.Query{})
	if err != nil {
		slog.Error("load collection failed", "collection", c.Name(), "error", err)
		return []T{}
	}
	return docs
}

// Seed copies d into every collection of s that is still empty. Collections
// that already hold documents are left alone.
func Seed(ctx context.Context, s Stores, d *Dataset) error {
	steps := []func() (string, int, error){
		func() (string, int, error) { return seedCollection(ctx, s.Galleries, d.Galleries) },
		func() (string, int, error) { return seedCollection(ctx, s.Photos, d.Photos) },
		func() (string, int, error) { return seedCollection(ctx, s.Articles, d.Articles) },
		func() (string, int, error) { return seedCollection(ctx, s.Resources, d.Resources) },
		func() (string, int, error) { return seedCollection(ctx, s.Vendors, d.Vendors) },
		func() (string, int, error) { return seedCollection(ctx, s.Events, d.Events) },
		func() (string, int, error) { return seedCollection(ctx, s.ForumCategories, d.ForumCategories) },
		func() (string, int, error) { return seedCollection(ctx, s.ForumPosts, d.ForumPosts) },
		func() (string, int, error) { return seedCollection(ctx, s.Members, d.Members) },
	}
	for _, step := range steps {
		name, n, err := step()
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("seeded collection", "collection", name, "documents", n)
		}
	}
	return nil
}

func seedCollection[T docstore.Document](ctx context.Context, c docstore.Collection[T], docs []T) (string, int, error) {
	existing, err := c.Count(ctx)
	if err != nil {
		return c.Name(), 0, fmt.Errorf("seed %s: %w", c.Name(), err)
	}
	if existing > 0 {
		return c.Name(), 0, nil
	}
	for _, doc := range docs {
		if err := c.Insert(ctx, doc); err != nil {
			return c.Name(), 0, fmt.Errorf("seed %s: insert %s: %w", c.Name(), doc.DocID(), err)
		}
	}
	return c.Name(), len(docs), nil
}
