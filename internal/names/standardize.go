// Package names canonicalizes person names and decides equivalence of
// differently formatted variants ("Hon. John E. Smith Jr." vs "John Smith").
package names

import "strings"

// Standardizer canonicalizes a free-text person name: honorifics and
// suffixes stripped, interior tokens reduced to initials, connector
// particles kept verbatim.
type Standardizer struct {
	prefixes   map[string]bool
	suffixes   map[string]bool
	connectors map[string]bool
}

// NewStandardizer creates a new name standardizer.
func NewStandardizer() *Standardizer {
	return &Standardizer{
		prefixes: tokenSet(
			"hon", "dr", "mr", "mrs", "ms", "judge", "justice",
			"professor", "prof", "rev", "sir", "dame",
		),
		suffixes: tokenSet(
			"esq", "jr", "sr", "i", "ii", "iii", "iv", "v",
			"md", "phd", "jd", "llm", "cpa", "ret",
		),
		connectors: tokenSet(
			"de", "la", "van", "von", "der", "del", "of", "the",
		),
	}
}

// Standardize canonicalizes a name. The transformation is idempotent:
// stripping and initial-reduction never reintroduce material that a
// second pass would remove.
func (s *Standardizer) Standardize(name string) string {
	tokens := strings.Fields(name)

	// Strip honorific prefixes anchored at the start.
	for len(tokens) > 1 && s.prefixes[bareToken(tokens[0])] {
		tokens = tokens[1:]
	}

	// Strip suffixes anchored at the end.
	for len(tokens) > 1 && s.suffixes[bareToken(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) < 3 {
		return strings.Join(tokens, " ")
	}

	// Keep first and last tokens verbatim; reduce interior tokens to
	// their upper-cased initial, except connector particles which stay
	// lowercase verbatim.
	out := make([]string, 0, len(tokens))
	out = append(out, tokens[0])
	for _, tok := range tokens[1 : len(tokens)-1] {
		if s.connectors[strings.ToLower(tok)] {
			out = append(out, strings.ToLower(tok))
			continue
		}
		initial := []rune(tok)[0]
		out = append(out, strings.ToUpper(string(initial)))
	}
	out = append(out, tokens[len(tokens)-1])

	return strings.Join(out, " ")
}

// bareToken lowercases a token and drops trailing periods and commas so
// "Hon.," and "hon" compare equal against the prefix/suffix sets.
func bareToken(tok string) string {
	return strings.ToLower(strings.TrimRight(tok, ".,"))
}

func tokenSet(tokens ...string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
