// Package slug derives unique URL-safe identifiers from display names.
package slug

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"fundsync/internal/textnorm"
)

// ErrUnsluggable is returned when a name does not reduce to a usable slug.
var ErrUnsluggable = errors.New("name cannot be turned into a slug")

// formerlyMarker starts the former-name suffix the source appends to renamed funds.
const formerlyMarker = "-formerly"

var (
	disallowed = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// Set is an ordered collection of slugs already taken by one entity type.
// The zero value is not usable; create one with NewSet.
type Set struct {
	order []string
	index map[string]struct{}
}

// NewSet returns a Set seeded with existing slugs, in order. Duplicates are ignored.
func NewSet(existing ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(existing))}
	for _, v := range existing {
		s.Add(v)
	}
	return s
}

// Has reports whether slug is taken.
func (s *Set) Has(slug string) bool {
	_, ok := s.index[slug]
	return ok
}

// Add records slug as taken and reports whether it was new.
func (s *Set) Add(slug string) bool {
	if s.Has(slug) {
		return false
	}
	s.index[slug] = struct{}{}
	s.order = append(s.order, slug)
	return true
}

// Len returns the number of taken slugs.
func (s *Set) Len() int { return len(s.order) }

// Slugs returns the taken slugs in insertion order.
func (s *Set) Slugs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Base normalizes name into its canonical slug without checking for collisions.
func Base(name string) (string, error) {
	folded, err := textnorm.Fold(name)
	if err != nil {
		return "", errors.Join(ErrUnsluggable, err)
	}

	s := strings.ToLower(strings.TrimSpace(disallowed.ReplaceAllString(folded, "")))
	s = separators.ReplaceAllString(s, "-")
	if i := strings.Index(s, formerlyMarker); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, "-")

	if s == "" {
		return "", ErrUnsluggable
	}
	return s, nil
}

// Assign returns a slug for name that is not yet in used and records it there.
// Collisions get a numeric suffix starting at 2. On failure it returns "" and
// ErrUnsluggable; used is left untouched.
func Assign(name string, used *Set) (string, error) {
	base, err := Base(name)
	if err != nil {
		return "", err
	}

	candidate := base
	for n := 2; used.Has(candidate); n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	used.Add(candidate)
	return candidate, nil
}
