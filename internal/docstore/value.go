// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package docstore

import (
	"encoding/json"
	"reflect"
	"strings"
)

// normalize converts v into the shape encoding/json produces when decoding
// into an any (float64, string, bool, []any, map[string]any, nil).
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// matches reports whether every filter holds for the decoded document.
func matches(fields map[string]any, filters []normalizedFilter) bool {
	for _, f := range filters {
		got, ok := fields[f.field]
		if !ok || !reflect.DeepEqual(got, f.value) {
			return false
		}
	}
	return true
}

type normalizedFilter struct {
	field string
	value any
}

// typeRank orders JSON values of different types the way PostgreSQL orders
// jsonb: strings < numbers < booleans < arrays < objects.
func typeRank(v any) int {
	switch v.(type) {
	case string:
		return 1
	case float64:
		return 2
	case bool:
		return 3
	case []any:
		return 4
	case map[string]any:
		return 5
	}
	return 0
}

// compareValues orders two decoded JSON scalars. Composite values of the
// same type compare equal.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}
	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case bool:
		bv := b.(bool)
		switch {
		case !av && bv:
			return -1
		case av && !bv:
			return 1
		}
	}
	return 0
}
