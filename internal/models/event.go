// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Event is a meeting, workshop or show on the society calendar.
type Event struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// DocID returns the record identity.
func (e Event) DocID() string { return e.ID }

// EndsAt returns the end of the event, or its start when no end is recorded.
func (e *Event) EndsAt() time.Time {
	if e.EndDate != nil {
		return *e.EndDate
	}
	return e.StartDate
}
