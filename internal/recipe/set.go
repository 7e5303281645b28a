package recipe

import "github.com/cruciblehq/chariotd/internal/crex"

// Set is the full collection of recipes parsed from a configuration and
// its imports, indexed for (namespace, name) lookup.
type Set struct {
	recipes []*Recipe
	byKey   map[string]*Recipe
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{byKey: make(map[string]*Recipe)}
}

// Add inserts r into the set. It returns ErrDuplicateRecipe if a recipe
// with the same (Namespace, Name) already exists.
func (s *Set) Add(r *Recipe) error {
	key := r.Key()
	if _, exists := s.byKey[key]; exists {
		return crex.Wrapf(ErrDuplicateRecipe, "`%s`", key)
	}
	s.recipes = append(s.recipes, r)
	s.byKey[key] = r
	return nil
}

// Lookup finds a recipe by (namespace, name).
func (s *Set) Lookup(ns Namespace, name string) (*Recipe, bool) {
	r, ok := s.byKey[ns.String()+"/"+name]
	return r, ok
}

// All returns every recipe in the set, in declaration order.
func (s *Set) All() []*Recipe { return s.recipes }

// Len returns the number of recipes in the set.
func (s *Set) Len() int { return len(s.recipes) }
