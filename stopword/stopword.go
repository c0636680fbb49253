// Package stopword removes configured noise tokens from extracted text.
//
// Filtering splits on whitespace and compares each raw token, lowercased,
// against the active set. Punctuation is deliberately not stripped: the
// token "word," is compared as "word," and is therefore not removed by a
// "word" stopword. Retained tokens keep their original casing and order.
package stopword

import "strings"

// Set is a collection of lowercase stopword tokens.
type Set map[string]struct{}

// defaultSet is process-wide read-only state, built once at init.
var defaultSet Set

func init() {
	defaultSet = make(Set, len(defaultWords))
	for _, w := range defaultWords {
		defaultSet[w] = struct{}{}
	}
}

// Default returns the built-in stopword set. The returned Set is shared;
// callers must not mutate it — use NewSet to combine it with extra tokens.
func Default() Set {
	return defaultSet
}

// NewSet returns the union of the default set and the given extra tokens.
// Extra tokens are trimmed of surrounding whitespace and lowercased; empty
// strings are dropped. The union never mutates the default set, and adding
// the same tokens twice yields the same set.
func NewSet(extra ...string) Set {
	s := make(Set, len(defaultSet)+len(extra))
	for w := range defaultSet {
		s[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether the lowercased form of token is in the set.
func (s Set) Contains(token string) bool {
	_, ok := s[strings.ToLower(token)]
	return ok
}

// ParseCustom splits free-form comma-separated stopword text into tokens,
// trimmed, with empty entries dropped.
func ParseCustom(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, w := range strings.Split(text, ",") {
		w = strings.TrimSpace(w)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Filter removes every whitespace-delimited token whose lowercased form is
// in the set, preserving the order and original casing of retained tokens,
// joined by single spaces. Empty input yields empty output. Pure and
// deterministic.
func Filter(text string, set Set) string {
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	kept := words[:0:0]
	for _, w := range words {
		if !set.Contains(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
