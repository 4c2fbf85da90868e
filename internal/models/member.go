// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// Membership levels offered by the society.
const (
	LevelStudent    = "student"
	LevelIndividual = "individual"
	LevelFamily     = "family"
	LevelLifetime   = "lifetime"
)

// Member is a society member. Members author forum posts and replies.
type Member struct {
	ID               string     `json:"_id"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	MembershipLevel  string     `json:"membershipLevel"`
	IsActive         bool       `json:"isActive"`
	ExpirationDate   *time.Time `json:"expirationDate,omitempty"`
	BonsaiCollection string     `json:"bonsaiCollection"`
	PasswordHash     string     `json:"passwordHash,omitempty"`
}

// DocID returns the record identity.
func (m Member) DocID() string { return m.ID }

// DisplayName is the name shown next to forum posts.
func (m *Member) DisplayName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// IsExpired reports whether the membership lapsed before now. Memberships
// without an expiration date (lifetime) never expire.
func (m *Member) IsExpired(now time.Time) bool {
	return m.ExpirationDate != nil && m.ExpirationDate.Before(now)
}

// Collection splits the comma- or semicolon-delimited list of trees the
// member owns, dropping blank entries.
func (m *Member) Collection() []string {
	parts := strings.FieldsFunc(m.BonsaiCollection, func(r rune) bool {
		return r == ',' || r == ';'
	})
	trees := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			trees = append(trees, p)
		}
	}
	return trees
}

// Actor is the authenticated identity behind a write. A nil *Actor means
// nobody is signed in.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}
