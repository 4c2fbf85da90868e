// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forum implements the members' discussion board: categories,
// threads and replies. Reads are served from memory. Writes are
// serialised by the catalog's lock and, when a document store is attached,
// persisted before the in-memory state changes, so a failed persist leaves
// the catalog as it was.
package forum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/docstore"
	"bonsaisite/internal/metrics"
	"bonsaisite/internal/models"
	"bonsaisite/internal/slug"
)

// Input limits for writes, counted in characters.
const (
	MaxTitleLength   = 200
	MaxContentLength = 20000
)

// Catalog holds forum categories and posts. It is safe for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	categories []models.ForumCategory
	posts      []models.ForumPost

	store docstore.Collection[models.ForumPost]
	now   func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStore persists new posts and replies to s.
func WithStore(s docstore.Collection[models.ForumPost]) Option {
	return func(c *Catalog) { c.store = s }
}

// WithClock replaces time.Now as the source of post and reply timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// New creates a catalog over copies of the given records.
func New(categories []models.ForumCategory, posts []models.ForumPost, opts ...Option) *Catalog {
	c := &Catalog{
		categories: slices.Clone(categories),
		posts:      make([]models.ForumPost, len(posts)),
		now:        time.Now,
	}
	for i, p := range posts {
		c.posts[i] = clonePost(p)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// clonePost copies p so that its replies and tags no longer alias the
// original slices.
func clonePost(p models.ForumPost) models.ForumPost {
	p.Replies = slices.Clone(p.Replies)
	p.Tags = slices.Clone(p.Tags)
	if p.Replies == nil {
		p.Replies = []models.Reply{}
	}
	return p
}

// ListCategories returns the categories in source order. PostCount and
// LatestPost are computed from the current posts, so they always reflect
// writes made through the catalog.
func (c *Catalog) ListCategories() []models.ForumCategory {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.ForumCategory, len(c.categories))
	for i, cat := range c.categories {
		cat.PostCount = 0
		cat.LatestPost = nil
		var latest *models.ForumPost
		for j := range c.posts {
			p := &c.posts[j]
			if p.CategoryID != cat.ID {
				continue
			}
			cat.PostCount++
			if latest == nil || p.ActivityAt().After(latest.ActivityAt()) {
				latest = p
			}
		}
		if latest != nil {
			cat.LatestPost = &models.LatestPost{
				PostID:       latest.ID,
				Title:        latest.Title,
				AuthorName:   latest.ActivityAuthor(),
				ActivityDate: latest.ActivityAt(),
			}
		}
		out[i] = cat
	}
	return out
}

// GetCategoryByID returns the category with the id, counters included.
func (c *Catalog) GetCategoryByID(id string) (models.ForumCategory, bool) {
	for _, cat := range c.ListCategories() {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.ForumCategory{}, false
}

// ListPostsForCategory returns the category's posts, pinned ones first and
// then by latest activity, newest first. Posts that compare equal keep
// their source order.
func (c *Catalog) ListPostsForCategory(categoryID string) []models.ForumPost {
	c.mu.RLock()
	out := []models.ForumPost{}
	for _, p := range c.posts {
		if p.CategoryID == categoryID {
			out = append(out, clonePost(p))
		}
	}
	c.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.ForumPost) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return b.ActivityAt().Compare(a.ActivityAt())
	})
	return out
}

// GetPostByID returns the post with the id. The returned post owns its
// reply slice.
func (c *Catalog) GetPostByID(id string) (models.ForumPost, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return clonePost(c.posts[i]), true
	}
	return models.ForumPost{}, false
}

// indexOf must be called with c.mu held.
func (c *Catalog) indexOf(postID string) int {
	return slices.IndexFunc(c.posts, func(p models.ForumPost) bool {
		return p.ID == postID
	})
}

func (c *Catalog) hasCategory(id string) bool {
	return slices.ContainsFunc(c.categories, func(cat models.ForumCategory) bool {
		return cat.ID == id
	})
}

// RecordView bumps the post's view counter and returns the new count. The
// counter lives in memory; it reaches the store with the post's next
// persisted write.
func (c *Catalog) RecordView(postID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(postID)
	if i < 0 {
		return 0, false
	}
	c.posts[i].ViewCount++
	return c.posts[i].ViewCount, true
}

// CreatePost starts a new thread in the category on behalf of actor.
// Checks run in order: a signed-in actor, valid input, then an existing
// category.
func (c *Catalog) CreatePost(ctx context.Context, actor *models.Actor, categoryID, title, content string) (models.ForumPost, error) {
	post, err := c.createPost(ctx, actor, categoryID, title, content)
	recordWrite("post", err)
	if err != nil {
		return models.ForumPost{}, fmt.Errorf("create post: %w", err)
	}
	slog.Info("forum post created", "post_id", post.ID, "category_id", categoryID, "author_id", actor.ID)
	return post, nil
}

func (c *Catalog) createPost(ctx context.Context, actor *models.Actor, categoryID, title, content string) (models.ForumPost, error) {
	if actor == nil {
		return models.ForumPost{}, catalog.ErrAuthRequired
	}
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if err := validateText("title", title, MaxTitleLength); err != nil {
		return models.ForumPost{}, err
	}
	if err := validateText("content", content, MaxContentLength); err != nil {
		return models.ForumPost{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasCategory(categoryID) {
		return models.ForumPost{}, &catalog.NotFoundError{Resource: "forum category", ID: categoryID}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.ForumPost{}, fmt.Errorf("generate post id: %w", err)
	}
	post := models.ForumPost{
		ID:         id.String(),
		CategoryID: categoryID,
		Title:      title,
		Slug:       slug.Generate(title),
		Content:    content,
		AuthorID:   actor.ID,
		AuthorName: actor.DisplayName,
		PostDate:   c.now().UTC(),
		Replies:    []models.Reply{},
		Tags:       []string{},
	}

	if c.store != nil {
		if err := c.store.Insert(ctx, post); err != nil {
			return models.ForumPost{}, upstream("insert post", err)
		}
	}

	c.posts = append(c.posts, post)
	return clonePost(post), nil
}

// AddReply appends a reply by actor to the post. Checks run in order: a
// signed-in actor, valid content, then an existing post.
func (c *Catalog) AddReply(ctx context.Context, actor *models.Actor, postID, content string) (models.Reply, error) {
	reply, err := c.addReply(ctx, actor, postID, content)
	recordWrite("reply", err)
	if err != nil {
		return models.Reply{}, fmt.Errorf("add reply: %w", err)
	}
	slog.Info("forum reply added", "reply_id", reply.ID, "post_id", postID, "author_id", actor.ID)
	return reply, nil
}

func (c *Catalog) addReply(ctx context.Context, actor *models.Actor, postID, content string) (models.Reply, error) {
	if actor == nil {
		return models.Reply{}, catalog.ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if err := validateText("content", content, MaxContentLength); err != nil {
		return models.Reply{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(postID)
	if i < 0 {
		return models.Reply{}, &catalog.NotFoundError{Resource: "forum post", ID: postID}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Reply{}, fmt.Errorf("generate reply id: %w", err)
	}
	reply := models.Reply{
		ID:         id.String(),
		AuthorID:   actor.ID,
		AuthorName: actor.DisplayName,
		Content:    content,
		PostDate:   c.now().UTC(),
	}

	updated := clonePost(c.posts[i])
	updated.Replies = append(updated.Replies, reply)

	if c.store != nil {
		if err := c.store.Update(ctx, updated); err != nil {
			return models.Reply{}, upstream("update post", err)
		}
	}

	c.posts[i] = updated
	return reply, nil
}

func validateText(field, value string, max int) error {
	if value == "" {
		return &catalog.ValidationError{Field: field, Message: "is required"}
	}
	if utf8.RuneCountInString(value) > max {
		return &catalog.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

// upstream makes sure a store failure matches catalog.ErrUpstreamUnavailable.
// Guarded collections already wrap their errors; bare ones do not.
func upstream(op string, err error) error {
	if errors.Is(err, catalog.ErrUpstreamUnavailable) {
		return err
	}
	return catalog.Upstream(op, err)
}

func recordWrite(kind string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrAuthRequired):
		outcome = "unauthenticated"
	case errors.Is(err, catalog.ErrValidation):
		outcome = "invalid"
	case errors.Is(err, catalog.ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, catalog.ErrUpstreamUnavailable):
		outcome = "upstream_error"
	default:
		outcome = "error"
	}
	metrics.ForumWrites.WithLabelValues(kind, outcome).Inc()
}
