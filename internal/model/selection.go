package model

import (
	"fmt"
	"strings"
)

// SelectionSet records, for every Category, whether it should be redacted.
// Every constructor and method in this package keeps the set total: each
// registered category has an explicit entry.
type SelectionSet map[Category]bool

// DefaultSelection returns a set with every category marked for redaction.
func DefaultSelection() SelectionSet {
	s := make(SelectionSet, len(categories))
	for _, c := range categories {
		s[c] = true
	}
	return s
}

// Clone returns an independent copy of s. A nil or partial set is completed
// with the default (redact) value so the copy is always total.
func (s SelectionSet) Clone() SelectionSet {
	out := DefaultSelection()
	for c, v := range s {
		if c.Valid() {
			out[c] = v
		}
	}
	return out
}

// Redacted reports whether c is marked for redaction.
func (s SelectionSet) Redacted(c Category) bool {
	v, ok := s[c]
	return !ok || v
}

// Exempt returns a copy of s with the given categories cleared.
func (s SelectionSet) Exempt(cs ...Category) SelectionSet {
	out := s.Clone()
	for _, c := range cs {
		if c.Valid() {
			out[c] = false
		}
	}
	return out
}

// Toggle returns a copy of s with the flag for c flipped.
func (s SelectionSet) Toggle(c Category) (SelectionSet, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown PII category %q", c)
	}
	out := s.Clone()
	out[c] = !out[c]
	return out, nil
}

// IsTotal reports whether s holds exactly the registered categories.
func (s SelectionSet) IsTotal() bool {
	if len(s) != len(categories) {
		return false
	}
	for _, c := range categories {
		if _, ok := s[c]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether both sets carry the same flags.
func (s SelectionSet) Equal(other SelectionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c, v := range s {
		ov, ok := other[c]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Exempted returns the categories that will not be redacted, in registry order.
func (s SelectionSet) Exempted() []Category {
	var out []Category
	for _, c := range categories {
		if !s.Redacted(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s SelectionSet) String() string {
	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, fmt.Sprintf("%s=%t", c, s.Redacted(c)))
	}
	return strings.Join(parts, " ")
}
