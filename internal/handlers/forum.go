// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bonsaisite/internal/cache"
	"bonsaisite/internal/forum"
	"bonsaisite/internal/middleware"
)

// Forum groups the discussion forum handlers. Category listings are
// served from the response cache; every successful write drops the
// cached forum responses.
type Forum struct {
	catalog *forum.Catalog
	cache   *cache.ResponseCache
}

// NewForum creates a Forum handler group. rc may be nil.
func NewForum(c *forum.Catalog, rc *cache.ResponseCache) *Forum {
	return &Forum{catalog: c, cache: rc}
}

// createPostRequest is the body of POST /api/forum/posts.
type createPostRequest struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// addReplyRequest is the body of POST /api/forum/posts/{id}/replies.
type addReplyRequest struct {
	Content string `json:"content"`
}

// ListCategories returns the categories with their computed post counts
// and latest activity.
func (f *Forum) ListCategories(w http.ResponseWriter, r *http.Request) {
	serveCached(w, r, f.cache, cache.ForumCategoriesKey(), func() any {
		return f.catalog.ListCategories()
	})
}

// ListCategoryPosts returns a category's posts, pinned first, then by
// latest activity.
func (f *Forum) ListCategoryPosts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := f.catalog.GetCategoryByID(id); !ok {
		writeNotFound(w, "forum category", id)
		return
	}
	serveCached(w, r, f.cache, cache.ForumCategoryPostsKey(id), func() any {
		return f.catalog.ListPostsForCategory(id)
	})
}

// GetPost returns one post with its replies and counts the view.
func (f *Forum) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := f.catalog.RecordView(id); !ok {
		writeNotFound(w, "forum post", id)
		return
	}
	p, ok := f.catalog.GetPostByID(id)
	if !ok {
		writeNotFound(w, "forum post", id)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePost starts a thread as the signed-in member.
func (f *Forum) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := f.catalog.CreatePost(r.Context(), middleware.ActorFromCtx(r.Context()),
		req.CategoryID, req.Title, req.Content)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	f.cache.InvalidatePrefix(r.Context(), cache.ForumPrefix)
	w.Header().Set("Location", "/api/forum/posts/"+post.ID)
	writeJSON(w, http.StatusCreated, post)
}

// AddReply appends a reply to a thread as the signed-in member.
func (f *Forum) AddReply(w http.ResponseWriter, r *http.Request) {
	var req addReplyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := f.catalog.AddReply(r.Context(), middleware.ActorFromCtx(r.Context()),
		chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	f.cache.InvalidatePrefix(r.Context(), cache.ForumPrefix)
	writeJSON(w, http.StatusCreated, reply)
}
