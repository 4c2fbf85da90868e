// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package learning serves the knowledge base: articles with category,
// difficulty and text filters, plus the resource and vendor listings.
package learning

import (
	"slices"
	"sync"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/models"
)

// All disables a category or difficulty filter.
const All = "all"

// Filter narrows ListArticles. Empty fields and All mean "no filter".
type Filter struct {
	Category   string
	Difficulty string
	Search     string // case-insensitive substring of the title or any tag
}

// Catalog holds articles, resources and vendors in memory. It is safe for
// concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	articles  []models.Article
	resources []models.Resource
	vendors   []models.Vendor
}

// New creates a catalog over copies of the given records.
func New(articles []models.Article, resources []models.Resource, vendors []models.Vendor) *Catalog {
	return &Catalog{
		articles:  slices.Clone(articles),
		resources: slices.Clone(resources),
		vendors:   slices.Clone(vendors),
	}
}

// ListArticles applies the category, difficulty and search filters in that
// order and returns the matches newest first. Search text is matched as
// given, spaces included, against the title and tags only. It never
// fails; no matches yields an empty slice.
func (c *Catalog) ListArticles(f Filter) []models.Article {
	needle := catalog.Fold(f.Search)

	c.mu.RLock()
	out := []models.Article{}
	for _, a := range c.articles {
		if !isAll(f.Category) && a.Category != f.Category {
			continue
		}
		if !isAll(f.Difficulty) && a.Difficulty != f.Difficulty {
			continue
		}
		if needle != "" && !catalog.Contains(a.Title, needle) && !catalog.AnyContains(a.Tags, needle) {
			continue
		}
		out = append(out, a)
	}
	c.mu.RUnlock()

	sortNewestFirst(out)
	return out
}

func isAll(v string) bool {
	return v == "" || v == All
}

func sortNewestFirst(articles []models.Article) {
	slices.SortStableFunc(articles, func(a, b models.Article) int {
		return b.PublishDate.Compare(a.PublishDate)
	})
}

// FeaturedArticles returns the featured articles, newest first.
func (c *Catalog) FeaturedArticles() []models.Article {
	c.mu.RLock()
	out := []models.Article{}
	for _, a := range c.articles {
		if a.Featured {
			out = append(out, a)
		}
	}
	c.mu.RUnlock()

	sortNewestFirst(out)
	return out
}

// GetArticleByID returns the article with the id.
func (c *Catalog) GetArticleByID(id string) (models.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range c.articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

// ListCategories returns each article category once, in the order it first
// appears.
func (c *Catalog) ListCategories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	out := []string{}
	for _, a := range c.articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}

// ListResources returns every resource as loaded.
func (c *Catalog) ListResources() []models.Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Resource{}, c.resources...)
}

// ListVendors returns every vendor as loaded.
func (c *Catalog) ListVendors() []models.Vendor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Vendor{}, c.vendors...)
}
