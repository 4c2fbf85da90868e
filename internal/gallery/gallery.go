// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gallery serves the photo galleries: ordered gallery listings,
// per-gallery photo listings and the most recent photos across galleries.
package gallery

import (
	"cmp"
	"slices"
	"sync"

	"bonsaisite/internal/models"
)

// DefaultRecentLimit is used by RecentPhotos when no positive limit is given.
const DefaultRecentLimit = 10

// Catalog holds galleries and photos in memory. It is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	galleries []models.Gallery
	photos    []models.Photo
}

// New creates a catalog over copies of galleries and photos.
func New(galleries []models.Gallery, photos []models.Photo) *Catalog {
	return &Catalog{
		galleries: slices.Clone(galleries),
		photos:    slices.Clone(photos),
	}
}

// ListGalleries returns every gallery in display order: galleries with a
// sort order first, ascending; the rest after them. Ties, and galleries
// without a sort order, are ordered by creation date, newest first, then id.
func (c *Catalog) ListGalleries() []models.Gallery {
	c.mu.RLock()
	out := slices.Clone(c.galleries)
	c.mu.RUnlock()

	slices.SortStableFunc(out, compareGalleries)
	return out
}

func compareGalleries(a, b models.Gallery) int {
	switch {
	case a.HasSortOrder() && b.HasSortOrder():
		if c := cmp.Compare(*a.SortOrder, *b.SortOrder); c != 0 {
			return c
		}
	case a.HasSortOrder():
		return -1
	case b.HasSortOrder():
		return 1
	}
	if c := b.CreatedDate.Compare(a.CreatedDate); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// GetGalleryByID returns the gallery with the id.
func (c *Catalog) GetGalleryByID(id string) (models.Gallery, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, g := range c.galleries {
		if g.ID == id {
			return g, true
		}
	}
	return models.Gallery{}, false
}

// ListPhotos returns the photos of a gallery in source order. Unknown
// galleries and empty galleries both yield an empty slice.
func (c *Catalog) ListPhotos(galleryID string) []models.Photo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []models.Photo{}
	for _, p := range c.photos {
		if p.GalleryID == galleryID {
			out = append(out, p)
		}
	}
	return out
}

// PhotoCount returns how many photos belong to the gallery, counted from the
// photo collection rather than the gallery's stored total.
func (c *Catalog) PhotoCount(galleryID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, p := range c.photos {
		if p.GalleryID == galleryID {
			n++
		}
	}
	return n
}

// GetPhotoByID returns the photo with the id.
func (c *Catalog) GetPhotoByID(id string) (models.Photo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.photos {
		if p.ID == id {
			return p, true
		}
	}
	return models.Photo{}, false
}

// RecentPhotos returns up to limit photos with the latest shoot dates,
// newest first. The catalog's own photo order is left untouched.
func (c *Catalog) RecentPhotos(limit int) []models.Photo {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	c.mu.RLock()
	out := slices.Clone(c.photos)
	c.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.Photo) int {
		return b.ShootDate.Compare(a.ShootDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.Photo{}
	}
	return out
}
