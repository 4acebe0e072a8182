package discovery

import (
	"path/filepath"
	"strings"

	"caserun/internal/domain"
)

// Filter filters test cases by identifier
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test cases by id pattern using wildcard matching
// Supports patterns like "sort_*" or "*empty*"
func (f *Filter) FilterByName(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, tc := range cases {
		if matchName(pattern, tc.ID) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

// FilterByIDs keeps only the cases whose id is in ids, preserving order
func (f *Filter) FilterByIDs(cases []domain.TestCase, ids map[string]struct{}) []domain.TestCase {
	var filtered []domain.TestCase
	for _, tc := range cases {
		if _, ok := ids[tc.ID]; ok {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func matchName(pattern, name string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty part between wildcards must appear in the name, in order
		rest := name
		nonEmpty := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			nonEmpty = true
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
		}
		return nonEmpty
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
