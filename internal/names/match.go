package names

import "strings"

// Components is the ephemeral parse of a standardized name used by the
// matcher. Recomputed per comparison; never stored.
type Components struct {
	FirstName     string
	MiddleInitial string
	LastName      string
}

// Matcher decides whether two raw names refer to the same person. The
// relation is deliberately broad for last-name-only queries and strict
// on conflicting middle initials.
type Matcher struct {
	standardizer *Standardizer
}

// NewMatcher creates a new name matcher.
func NewMatcher() *Matcher {
	return &Matcher{standardizer: NewStandardizer()}
}

// Parse splits a standardized name into components. One token parses as
// a bare last name; the middle initial is recognized only when the
// second token is a single letter, optionally followed by a period.
func (m *Matcher) Parse(name string) Components {
	tokens := strings.Fields(m.standardizer.Standardize(name))

	switch {
	case len(tokens) == 0:
		return Components{}
	case len(tokens) == 1:
		return Components{LastName: tokens[0]}
	}

	c := Components{
		FirstName: tokens[0],
		LastName:  tokens[len(tokens)-1],
	}
	if len(tokens) >= 3 {
		if initial, ok := middleInitial(tokens[1]); ok {
			c.MiddleInitial = initial
		}
	}
	return c
}

// Match reports whether two raw names are equivalent. Symmetric:
// Match(a, b) == Match(b, a).
func (m *Matcher) Match(a, b string) bool {
	ca, cb := m.Parse(a), m.Parse(b)

	if ca.LastName == "" || cb.LastName == "" {
		return false
	}
	if !strings.EqualFold(ca.LastName, cb.LastName) {
		return false
	}
	// A last-name-only query matches every first name.
	if ca.FirstName == "" || cb.FirstName == "" {
		return true
	}
	if !strings.EqualFold(ca.FirstName, cb.FirstName) {
		return false
	}
	// Conflicting explicit middle initials split otherwise-identical
	// names into distinct identities.
	if ca.MiddleInitial != "" && cb.MiddleInitial != "" &&
		!strings.EqualFold(ca.MiddleInitial, cb.MiddleInitial) {
		return false
	}
	return true
}

// middleInitial extracts a middle initial from a token when the token is
// a single letter or a letter followed by a period.
func middleInitial(tok string) (string, bool) {
	trimmed := strings.TrimSuffix(tok, ".")
	if len(trimmed) != 1 {
		return "", false
	}
	r := rune(trimmed[0])
	if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
		return "", false
	}
	return strings.ToUpper(trimmed), true
}
