// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s case-folded for caseless comparison ("JUNIPER" and
// "juniper" fold to the same string).
func Fold(s string) string {
	// A Caser carries state, so every call gets its own.
	return cases.Fold().String(s)
}

// Contains reports whether haystack contains needle, ignoring case. The
// needle must already be folded with Fold; an empty needle matches anything.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), needle)
}

// AnyContains reports whether any of values contains the folded needle.
func AnyContains(values []string, needle string) bool {
	for _, v := range values {
		if Contains(v, needle) {
			return true
		}
	}
	return false
}
