// Package candidates maps (source, function) names to callable candidates.
package candidates

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"caserun/internal/candidates/sorting"
	"caserun/internal/execution"
)

// Registry holds the candidates compiled into the binary
type Registry struct {
	sources map[string]map[string]execution.Candidate
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]map[string]execution.Candidate)}
}

// Default returns a registry with the bundled sample candidates
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister("sorting_solution", "bubble_sort", sorting.BubbleSort)
	return r
}

// Register wraps fn with execution.Reflect and stores it under source and function
func (r *Registry) Register(source, function string, fn any) error {
	c, err := execution.Reflect(fn)
	if err != nil {
		return fmt.Errorf("register %s.%s: %w", source, function, err)
	}
	r.RegisterCandidate(source, function, c)
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(source, function string, fn any) {
	if err := r.Register(source, function, fn); err != nil {
		panic(err)
	}
}

// RegisterCandidate stores c under source and function
func (r *Registry) RegisterCandidate(source, function string, c execution.Candidate) {
	funcs, ok := r.sources[source]
	if !ok {
		funcs = make(map[string]execution.Candidate)
		r.sources[source] = funcs
	}
	funcs[function] = c
}

// HasSource reports whether any function is registered under source
func (r *Registry) HasSource(source string) bool {
	_, ok := r.sources[source]
	return ok
}

// Lookup returns the candidate registered under source and function
func (r *Registry) Lookup(source, function string) (execution.Candidate, bool) {
	c, ok := r.sources[source][function]
	return c, ok
}

// Sources returns the registered source names, sorted
func (r *Registry) Sources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Functions returns the function names registered under source, sorted
func (r *Registry) Functions(source string) []string {
	names := make([]string, 0, len(r.sources[source]))
	for name := range r.sources[source] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SourceKey derives the registry key from a candidate path,
// e.g. "solutions/sorting_solution.py" becomes "sorting_solution"
func SourceKey(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
