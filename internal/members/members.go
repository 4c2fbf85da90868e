// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package members is the society's member directory. It also signs members
// in: a successful Authenticate yields the Actor that forum writes need.
package members

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bonsaisite/internal/catalog"
	"bonsaisite/internal/models"
)

// Directory holds members in memory, indexed by e-mail. It is safe for
// concurrent use.
type Directory struct {
	mu      sync.RWMutex
	members []models.Member
	byEmail map[string]int // folded e-mail of active members -> index
	now     func() time.Time
}

// New builds a directory over a copy of members. Active members must have
// distinct e-mail addresses, compared without regard to case.
func New(members []models.Member) (*Directory, error) {
	d := &Directory{
		members: slices.Clone(members),
		byEmail: make(map[string]int),
		now:     time.Now,
	}
	for i, m := range d.members {
		if !m.IsActive {
			continue
		}
		key := emailKey(m.Email)
		if key == "" {
			continue
		}
		if j, dup := d.byEmail[key]; dup {
			return nil, &catalog.ValidationError{
				Field:   "email",
				Message: fmt.Sprintf("%q is shared by members %s and %s", m.Email, d.members[j].ID, m.ID),
			}
		}
		d.byEmail[key] = i
	}
	return d, nil
}

func emailKey(email string) string {
	return catalog.Fold(strings.TrimSpace(email))
}

// GetMemberByID returns the member with the id, active or not.
func (d *Directory) GetMemberByID(id string) (models.Member, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, m := range d.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// FindActiveByEmail looks up an active member by e-mail, ignoring case.
func (d *Directory) FindActiveByEmail(email string) (models.Member, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.byEmail[emailKey(email)]
	if !ok {
		return models.Member{}, false
	}
	return d.members[i], true
}

// ListActive returns active members ordered by last name, then first name.
func (d *Directory) ListActive() []models.Member {
	d.mu.RLock()
	out := []models.Member{}
	for _, m := range d.members {
		if m.IsActive {
			out = append(out, m)
		}
	}
	d.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.Member) int {
		if c := cmp.Compare(catalog.Fold(a.LastName), catalog.Fold(b.LastName)); c != 0 {
			return c
		}
		return cmp.Compare(catalog.Fold(a.FirstName), catalog.Fold(b.FirstName))
	})
	return out
}

// Authenticate checks the e-mail and password of an active member whose
// membership has not expired. Any mismatch yields catalog.ErrAuthRequired
// without saying which part was wrong.
func (d *Directory) Authenticate(email, password string) (*models.Actor, error) {
	m, ok := d.FindActiveByEmail(email)
	if !ok || m.PasswordHash == "" || m.IsExpired(d.now()) {
		return nil, catalog.ErrAuthRequired
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return nil, catalog.ErrAuthRequired
	}
	return &models.Actor{ID: m.ID, DisplayName: m.DisplayName()}, nil
}
