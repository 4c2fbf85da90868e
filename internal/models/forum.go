// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ForumCategory groups forum posts. PostCount and LatestPost are summaries
// derived from the post collection.
type ForumCategory struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PostCount   int         `json:"postCount"`
	LatestPost  *LatestPost `json:"latestPost,omitempty"`
}

// DocID returns the record identity.
func (c ForumCategory) DocID() string { return c.ID }

// LatestPost summarises the most recently active post of a category.
type LatestPost struct {
	PostID       string    `json:"postId"`
	Title        string    `json:"title"`
	AuthorName   string    `json:"authorName"`
	ActivityDate time.Time `json:"activityDate"`
}

// ForumPost is a discussion thread. Replies are kept in append order.
type ForumPost struct {
	ID         string    `json:"_id"`
	CategoryID string    `json:"categoryId"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug,omitempty"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	PostDate   time.Time `json:"postDate"`
	Pinned     bool      `json:"pinned"`
	ViewCount  int       `json:"viewCount"`
	Replies    []Reply   `json:"replies"`
	Tags       []string  `json:"tags"`
}

// DocID returns the record identity.
func (p ForumPost) DocID() string { return p.ID }

// ActivityAt returns the post date, or the post date of the last reply
// when the post has replies.
func (p *ForumPost) ActivityAt() time.Time {
	if n := len(p.Replies); n > 0 {
		return p.Replies[n-1].PostDate
	}
	return p.PostDate
}

// ActivityAuthor returns the display name of whoever was last active on the post.
func (p *ForumPost) ActivityAuthor() string {
	if n := len(p.Replies); n > 0 {
		return p.Replies[n-1].AuthorName
	}
	return p.AuthorName
}

// Reply is an answer appended to a ForumPost.
type Reply struct {
	ID         string    `json:"_id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	PostDate   time.Time `json:"postDate"`
}
