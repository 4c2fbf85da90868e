// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bonsaisite/internal/gallery"
	"bonsaisite/internal/models"
	"bonsaisite/internal/storage"
)

// Gallery groups the gallery and photo handlers.
type Gallery struct {
	catalog       *gallery.Catalog
	storageClient *storage.Client
}

// NewGallery creates a Gallery handler group. storageClient may be nil if
// S3 is not configured; thumbnails then keep their stored paths and
// originals are unavailable.
func NewGallery(c *gallery.Catalog, storageClient *storage.Client) *Gallery {
	return &Gallery{catalog: c, storageClient: storageClient}
}

// photoView is a photo as clients see it. The original's object key stays
// private; clients get the API link that presigns it.
func (g *Gallery) photoView(p models.Photo) models.Photo {
	p.OriginalURL = "/api/photos/" + p.ID + "/original"
	if g.storageClient != nil {
		p.ThumbnailURL = g.storageClient.PublicURL(p.ThumbnailURL)
	}
	return p
}

func (g *Gallery) photoViews(photos []models.Photo) []models.Photo {
	out := make([]models.Photo, len(photos))
	for i, p := range photos {
		out[i] = g.photoView(p)
	}
	return out
}

// galleryView replaces the stored photo total with the count of photos the
// catalog actually holds for the gallery.
func (g *Gallery) galleryView(gal models.Gallery) models.Gallery {
	gal.TotalPhotos = g.catalog.PhotoCount(gal.ID)
	return gal
}

// ListGalleries returns every gallery in display order.
func (g *Gallery) ListGalleries(w http.ResponseWriter, r *http.Request) {
	galleries := g.catalog.ListGalleries()
	for i := range galleries {
		galleries[i] = g.galleryView(galleries[i])
	}
	writeJSON(w, http.StatusOK, galleries)
}

// GetGallery returns one gallery.
func (g *Gallery) GetGallery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gal, ok := g.catalog.GetGalleryByID(id)
	if !ok {
		writeNotFound(w, "gallery", id)
		return
	}
	writeJSON(w, http.StatusOK, g.galleryView(gal))
}

// ListGalleryPhotos returns a gallery's photos. An unknown gallery is a 404;
// a known gallery without photos is an empty list.
func (g *Gallery) ListGalleryPhotos(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := g.catalog.GetGalleryByID(id); !ok {
		writeNotFound(w, "gallery", id)
		return
	}
	writeJSON(w, http.StatusOK, g.photoViews(g.catalog.ListPhotos(id)))
}

// RecentPhotos returns the newest photos across all galleries.
func (g *Gallery) RecentPhotos(w http.ResponseWriter, r *http.Request) {
	limit, msg := queryInt(r, "limit", gallery.DefaultRecentLimit, maxPageLimit)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	writeJSON(w, http.StatusOK, g.photoViews(g.catalog.RecentPhotos(limit)))
}

// GetPhoto returns one photo.
func (g *Gallery) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := g.catalog.GetPhotoByID(id)
	if !ok {
		writeNotFound(w, "photo", id)
		return
	}
	writeJSON(w, http.StatusOK, g.photoView(p))
}

// PhotoOriginal redirects to a short-lived presigned URL for the
// full-resolution original.
func (g *Gallery) PhotoOriginal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, ok := g.catalog.GetPhotoByID(id)
	if !ok || g.storageClient == nil || p.OriginalURL == "" {
		writeNotFound(w, "photo original", id)
		return
	}

	url, err := g.storageClient.OriginalURL(r.Context(), p.OriginalURL)
	if err != nil {
		slog.Error("presign original failed", "error", err, "photo_id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, url, http.StatusFound)
}
