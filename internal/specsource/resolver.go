package specsource

import "strings"

// SpecSheet resolves flat attribute lookups against the nested,
// categorized specification groups of a phone detail payload.
//
// The same attribute moves between category labels across phone
// generations ("Battery" vs "Battery & Charging"), so every lookup is
// two-tier: the known (category, key) pairs first, then a key-only scan
// across all groups.
type SpecSheet struct {
	groups []SpecGroup
}

func NewSpecSheet(groups []SpecGroup) *SpecSheet {
	return &SpecSheet{groups: groups}
}

// Get returns the value for an exact case-insensitive (category, key)
// match, or "" when absent. List values collapse to their first element.
func (s *SpecSheet) Get(category, key string) string {
	for _, g := range s.groups {
		if !strings.EqualFold(g.Title, category) {
			continue
		}
		if v := findKey(g.Specs, key); v != "" {
			return v
		}
	}
	return ""
}

// GetAny matches the key case-insensitively across all groups, ignoring
// the category label entirely.
func (s *SpecSheet) GetAny(key string) string {
	for _, g := range s.groups {
		if v := findKey(g.Specs, key); v != "" {
			return v
		}
	}
	return ""
}

// Lookup tries the given (category, key) pairs in order, then falls back
// to a category-blind scan for each key.
func (s *SpecSheet) Lookup(pairs ...[2]string) string {
	for _, p := range pairs {
		if v := s.Get(p[0], p[1]); v != "" {
			return v
		}
	}
	for _, p := range pairs {
		if v := s.GetAny(p[1]); v != "" {
			return v
		}
	}
	return ""
}

func findKey(specs []SpecEntry, key string) string {
	for _, e := range specs {
		if strings.EqualFold(e.Key, key) && len(e.Val) > 0 {
			return strings.TrimSpace(e.Val[0])
		}
	}
	return ""
}
