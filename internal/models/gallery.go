// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records served by the site catalogs. Every
// record marshals its identity under the "_id" key, the convention used by
// the hosted document database the fixtures were exported from.
package models

import "time"

// Gallery is a named collection of photos shown on the gallery page.
type Gallery struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CoverImageURL string    `json:"coverImageUrl"`
	TotalPhotos   int       `json:"totalPhotos"` // As stored; the API reports the counted photos.
	ViewCount     int       `json:"viewCount"`
	SortOrder     *int      `json:"sortOrder,omitempty"`
	CreatedDate   time.Time `json:"createdDate"`
}

// DocID returns the record identity.
func (g Gallery) DocID() string { return g.ID }

// HasSortOrder reports whether an explicit display position was assigned.
func (g *Gallery) HasSortOrder() bool {
	return g.SortOrder != nil
}

// Photo belongs to exactly one Gallery.
type Photo struct {
	ID           string    `json:"_id"`
	GalleryID    string    `json:"galleryId"`
	Title        string    `json:"title"`
	AltText      string    `json:"altText"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	OriginalURL  string    `json:"originalUrl"`
	ShootDate    time.Time `json:"shootDate"`
}

// DocID returns the record identity.
func (p Photo) DocID() string { return p.ID }
