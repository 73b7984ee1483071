package models

import "strings"

// StringList is an ordered set of strings persisted as a JSON column.
// Duplicates are suppressed on insert; order is insertion order.
type StringList []string

// NormalizeStringList trims entries, drops empties, and removes duplicates
// while preserving first-seen order.
func NormalizeStringList(in []string) StringList {
	out := make(StringList, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Contains reports whether the list holds s (case-insensitive).
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
