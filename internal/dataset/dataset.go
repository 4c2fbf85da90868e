// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dataset loads the records the catalogs are built from. Records
// come from the embedded fixtures, a directory with the same layout, or
// the document store.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/bcrypt"

	"bonsaisite/internal/models"
)

//go:embed fixtures/*.json
var embedFixtures embed.FS

// File names, one JSON array per record type.
const (
	GalleriesFile       = "galleries.json"
	PhotosFile          = "photos.json"
	ArticlesFile        = "articles.json"
	ResourcesFile       = "resources.json"
	VendorsFile         = "vendors.json"
	EventsFile          = "events.json"
	ForumCategoriesFile = "forum_categories.json"
	ForumPostsFile      = "forum_posts.json"
	MembersFile         = "members.json"
)

// Dataset holds every record type in source order.
type Dataset struct {
	Galleries       []models.Gallery
	Photos          []models.Photo
	Articles        []models.Article
	Resources       []models.Resource
	Vendors         []models.Vendor
	Events          []models.Event
	ForumCategories []models.ForumCategory
	ForumPosts      []models.ForumPost
	Members         []models.Member
}

// Fixtures returns the dataset compiled into the binary.
func Fixtures() (*Dataset, error) {
	sub, err := fs.Sub(embedFixtures, "fixtures")
	if err != nil {
		return nil, fmt.Errorf("open embedded fixtures: %w", err)
	}
	return Load(sub)
}

// FromDir reads a dataset from the JSON files in dir.
func FromDir(dir string) (*Dataset, error) {
	return Load(os.DirFS(dir))
}

// Load reads every record file from fsys. A missing file yields an empty
// collection; a malformed one is an error.
func Load(fsys fs.FS) (*Dataset, error) {
	d := &Dataset{}
	files := []struct {
		name string
		dst  any
	}{
		{GalleriesFile, &d.Galleries},
		{PhotosFile, &d.Photos},
		{ArticlesFile, &d.Articles},
		{ResourcesFile, &d.Resources},
		{VendorsFile, &d.Vendors},
		{EventsFile, &d.Events},
		{ForumCategoriesFile, &d.ForumCategories},
		{ForumPostsFile, &d.ForumPosts},
		{MembersFile, &d.Members},
	}
	for _, f := range files {
		if err := readJSON(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func readJSON(fsys fs.FS, name string, dst any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// AssignDevPasswords gives every member without a password hash the same
// bcrypt-hashed password, so that fixture members can sign in during
// development. It returns how many members were updated.
func (d *Dataset) AssignDevPasswords(password string, cost int) (int, error) {
	if password == "" {
		return 0, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return 0, fmt.Errorf("hash dev password: %w", err)
	}
	n := 0
	for i := range d.Members {
		if d.Members[i].PasswordHash == "" {
			d.Members[i].PasswordHash = string(hash)
			n++
		}
	}
	return n, nil
}
