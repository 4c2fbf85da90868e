// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/learning"
	"bonsaisite/internal/markdown"
	"bonsaisite/internal/models"
)

// defaultArticleLimit applies when ?limit= is absent.
const defaultArticleLimit = 20

// Learning groups the article, resource and vendor handlers.
type Learning struct {
	catalog *learning.Catalog
}

// NewLearning creates a Learning handler group.
func NewLearning(c *learning.Catalog) *Learning {
	return &Learning{catalog: c}
}

// articlePage is one page of a filtered article listing.
type articlePage struct {
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
	Offset   int              `json:"offset"`
	Limit    int              `json:"limit"`
}

// articleDetail adds the rendered body to an article.
type articleDetail struct {
	models.Article
	ContentHTML string `json:"contentHtml"`
}

// ListArticles filters articles by category, difficulty and search text,
// newest first, and pages the result.
func (l *Learning) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := validateQuery(q.Get("search")); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	limit, msg := queryInt(r, "limit", defaultArticleLimit, maxPageLimit)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	offset, msg := queryInt(r, "offset", 0, 0)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	all := l.catalog.ListArticles(learning.Filter{
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
		Search:     q.Get("search"),
	})
	writeJSON(w, http.StatusOK, articlePage{
		Articles: catalog.Page(all, offset, limit),
		Total:    len(all),
		Offset:   offset,
		Limit:    limit,
	})
}

// FeaturedArticles returns the featured articles, newest first.
func (l *Learning) FeaturedArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, l.catalog.FeaturedArticles())
}

// ListCategories returns the distinct article categories.
func (l *Learning) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, l.catalog.ListCategories())
}

// GetArticle returns one article with its Markdown body rendered.
func (l *Learning) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := l.catalog.GetArticleByID(id)
	if !ok {
		writeNotFound(w, "article", id)
		return
	}

	html, err := markdown.ToHTML(a.Content)
	if err != nil {
		slog.Error("render article failed", "error", err, "article_id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, articleDetail{Article: a, ContentHTML: html})
}

// ListResources returns the curated resource links.
func (l *Learning) ListResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, l.catalog.ListResources())
}

// ListVendors returns the vendor directory.
func (l *Learning) ListVendors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, l.catalog.ListVendors())
}
