// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gallery

import (
	"reflect"
	"testing"
	"time"

	"bonsaisite/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(n int) *int { return &n }

func galleryIDs(gs []models.Gallery) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.ID
	}
	return out
}

func photoIDs(ps []models.Photo) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestListGalleries(t *testing.T) {
	tests := []struct {
		name      string
		galleries []models.Gallery
		want      []string
	}{
		{
			name: "all have sort order",
			galleries: []models.Gallery{
				{ID: "g1", SortOrder: order(3), CreatedDate: date(2024, 1, 1)},
				{ID: "g2", SortOrder: order(1), CreatedDate: date(2023, 1, 1)},
				{ID: "g3", SortOrder: order(2), CreatedDate: date(2025, 1, 1)},
			},
			want: []string{"g2", "g3", "g1"},
		},
		{
			name: "none have sort order falls back to newest first",
			galleries: []models.Gallery{
				{ID: "g1", CreatedDate: date(2023, 1, 1)},
				{ID: "g2", CreatedDate: date(2025, 1, 1)},
				{ID: "g3", CreatedDate: date(2024, 1, 1)},
			},
			want: []string{"g2", "g3", "g1"},
		},
		{
			name: "mixed puts missing sort order last",
			galleries: []models.Gallery{
				{ID: "g1", CreatedDate: date(2025, 6, 1)},
				{ID: "g2", SortOrder: order(2), CreatedDate: date(2020, 1, 1)},
				{ID: "g3", CreatedDate: date(2024, 1, 1)},
				{ID: "g4", SortOrder: order(1), CreatedDate: date(2019, 1, 1)},
			},
			want: []string{"g4", "g2", "g1", "g3"},
		},
		{
			name: "equal sort order breaks ties by date then id",
			galleries: []models.Gallery{
				{ID: "b", SortOrder: order(1), CreatedDate: date(2024, 1, 1)},
				{ID: "a", SortOrder: order(1), CreatedDate: date(2024, 1, 1)},
				{ID: "c", SortOrder: order(1), CreatedDate: date(2025, 1, 1)},
			},
			want: []string{"c", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.galleries, nil)
			if got := galleryIDs(c.ListGalleries()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListGalleries: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetGalleryByID(t *testing.T) {
	c := New([]models.Gallery{{ID: "g1", Name: "Junipers"}}, nil)

	g, ok := c.GetGalleryByID("g1")
	if !ok || g.Name != "Junipers" {
		t.Errorf("GetGalleryByID(g1): got %+v, %v", g, ok)
	}
	if _, ok := c.GetGalleryByID("missing"); ok {
		t.Error("expected not-found for unknown gallery")
	}
}

func samplePhotos() []models.Photo {
	return []models.Photo{
		{ID: "p1", GalleryID: "g1", ShootDate: date(2024, 1, 1)},
		{ID: "p2", GalleryID: "g2", ShootDate: date(2024, 5, 1)},
		{ID: "p3", GalleryID: "g1", ShootDate: date(2024, 3, 1)},
		{ID: "p4", GalleryID: "g2", ShootDate: date(2023, 7, 1)},
		{ID: "p5", GalleryID: "g1", ShootDate: date(2024, 9, 1)},
	}
}

func TestListPhotos(t *testing.T) {
	c := New(nil, samplePhotos())

	if got := photoIDs(c.ListPhotos("g1")); !reflect.DeepEqual(got, []string{"p1", "p3", "p5"}) {
		t.Errorf("ListPhotos(g1): got %v", got)
	}
	empty := c.ListPhotos("nope")
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListPhotos(nope): expected empty non-nil slice, got %#v", empty)
	}
	if n := c.PhotoCount("g2"); n != 2 {
		t.Errorf("PhotoCount(g2): got %d, want 2", n)
	}
}

func TestGetPhotoByID(t *testing.T) {
	c := New(nil, samplePhotos())
	if p, ok := c.GetPhotoByID("p4"); !ok || p.GalleryID != "g2" {
		t.Errorf("GetPhotoByID(p4): got %+v, %v", p, ok)
	}
	if _, ok := c.GetPhotoByID("p9"); ok {
		t.Error("expected not-found for unknown photo")
	}
}

func TestRecentPhotos(t *testing.T) {
	c := New(nil, samplePhotos())

	if got := photoIDs(c.RecentPhotos(2)); !reflect.DeepEqual(got, []string{"p5", "p2"}) {
		t.Errorf("RecentPhotos(2): got %v, want [p5 p2]", got)
	}

	if got := len(c.RecentPhotos(0)); got != 5 {
		t.Errorf("RecentPhotos(0) should use the default limit: got %d photos", got)
	}

	// Reading recent photos must not reorder the catalog.
	if got := photoIDs(c.ListPhotos("g1")); !reflect.DeepEqual(got, []string{"p1", "p3", "p5"}) {
		t.Errorf("source order changed after RecentPhotos: %v", got)
	}
}

func TestRecentPhotosEmptyCatalog(t *testing.T) {
	got := New(nil, nil).RecentPhotos(3)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
