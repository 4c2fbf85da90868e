// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Difficulty levels used by the knowledge base.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Article is a knowledge-base or blog entry. Content is Markdown.
type Article struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	PublishDate time.Time `json:"publishDate"`
	Difficulty  string    `json:"difficulty"`
	Featured    bool      `json:"featured"`
}

// DocID returns the record identity.
func (a Article) DocID() string { return a.ID }

// Resource is an external link recommended by the society.
type Resource struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// DocID returns the record identity.
func (r Resource) DocID() string { return r.ID }

// Vendor is a nursery or supplier listed on the learning page.
type Vendor struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// DocID returns the record identity.
func (v Vendor) DocID() string { return v.ID }
