package graph

import "strings"

// PairSeparator joins the two halves of a canonical pair key. It must match
// what the analysis backend uses when it emits the contexts map.
const PairSeparator = "|"

// MaxSnippetLen caps stored context snippets, counted in runes. The backend
// truncates at the same bound, but the index enforces it independently.
const MaxSnippetLen = 400

// PairKey canonicalizes an unordered identifier pair: the two identifiers
// sorted lexicographically and joined with PairSeparator, so
// PairKey(a,b) == PairKey(b,a).
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + PairSeparator + b
}

// ContextIndex maps canonical pair keys to the text snippets in which the
// two entities co-occur. It is owned by the data source and only ever read
// here.
type ContextIndex map[string][]string

// NewContextIndex copies a raw contexts map, truncating over-long snippets.
func NewContextIndex(raw map[string][]string) ContextIndex {
	if raw == nil {
		return ContextIndex{}
	}
	idx := make(ContextIndex, len(raw))
	for key, snippets := range raw {
		kept := make([]string, 0, len(snippets))
		for _, s := range snippets {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			s = truncateRunes(s, MaxSnippetLen)
			kept = append(kept, s)
		}
		idx[key] = kept
	}
	return idx
}

// truncateRunes cuts s to at most max runes, never splitting a multibyte
// sequence. Snippets within the cap come back unchanged.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// Lookup returns up to max snippets for the unordered pair (a, b). found is
// false when the key is absent or maps to an empty sequence; that is a
// normal outcome, not an error.
func (idx ContextIndex) Lookup(a, b string, max int) (snippets []string, found bool) {
	all, ok := idx[PairKey(a, b)]
	if !ok || len(all) == 0 {
		return []string{}, false
	}
	if max > 0 && len(all) > max {
		all = all[:max]
	}
	out := make([]string, len(all))
	copy(out, all)
	return out, true
}
