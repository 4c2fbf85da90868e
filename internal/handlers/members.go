// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"bonsaisite/internal/members"
	"bonsaisite/internal/models"
)

// Members serves the public member directory.
type Members struct {
	directory *members.Directory
}

// NewMembers creates a Members handler group.
func NewMembers(d *members.Directory) *Members {
	return &Members{directory: d}
}

// memberView is the public face of a member. E-mail, expiry and the
// password hash never leave the server.
type memberView struct {
	ID              string   `json:"_id"`
	DisplayName     string   `json:"displayName"`
	MembershipLevel string   `json:"membershipLevel"`
	Collection      []string `json:"collection"`
}

// ListMembers returns active members sorted by name.
func (m *Members) ListMembers(w http.ResponseWriter, r *http.Request) {
	active := m.directory.ListActive()
	out := make([]memberView, len(active))
	for i := range active {
		out[i] = newMemberView(&active[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func newMemberView(mem *models.Member) memberView {
	return memberView{
		ID:              mem.ID,
		DisplayName:     mem.DisplayName(),
		MembershipLevel: mem.MembershipLevel,
		Collection:      mem.Collection(),
	}
}
