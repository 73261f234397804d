package graph

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPairKey(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"A", "B", "A|B"},
		{"B", "A", "A|B"},
		{"Darcy", "Bennet", "Bennet|Darcy"},
		{"x", "x", "x|x"},
	}

	for _, tt := range tests {
		if got := PairKey(tt.a, tt.b); got != tt.want {
			t.Errorf("PairKey(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestPairKeyCommutative verifies PairKey(a,b) == PairKey(b,a) for arbitrary
// identifiers, the invariant the context index depends on.
func TestPairKeyCommutative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("key is order-independent", prop.ForAll(
		func(a, b string) bool {
			return PairKey(a, b) == PairKey(b, a)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("key contains both identifiers", prop.ForAll(
		func(a, b string) bool {
			key := PairKey(a, b)
			return strings.Contains(key, a) && strings.Contains(key, b)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestContextIndexLookup(t *testing.T) {
	idx := NewContextIndex(map[string][]string{
		"A|B": {"one", "two", "three", "four"},
		"C|D": {},
	})

	snippets, found := idx.Lookup("B", "A", 3)
	if !found {
		t.Fatal("Expected lookup hit for reversed pair")
	}
	if len(snippets) != 3 {
		t.Errorf("Expected 3 snippets (capped), got %d", len(snippets))
	}

	snippets, found = idx.Lookup("C", "D", 3)
	if found {
		t.Error("Empty sequence must report not found")
	}
	if len(snippets) != 0 {
		t.Errorf("Expected no snippets, got %v", snippets)
	}

	if _, found := idx.Lookup("A", "Z", 3); found {
		t.Error("Absent key must report not found")
	}
}

func TestContextIndexTruncatesSnippets(t *testing.T) {
	long := strings.Repeat("x", MaxSnippetLen+50)
	idx := NewContextIndex(map[string][]string{"A|B": {long, "  padded  ", ""}})

	snippets, found := idx.Lookup("A", "B", 0)
	if !found {
		t.Fatal("Expected lookup hit")
	}
	if len(snippets) != 2 {
		t.Fatalf("Blank snippets should be dropped, got %d entries", len(snippets))
	}
	if len(snippets[0]) != MaxSnippetLen {
		t.Errorf("Snippet not truncated: len %d", len(snippets[0]))
	}
	if snippets[1] != "padded" {
		t.Errorf("Snippet not trimmed: %q", snippets[1])
	}
}

func TestContextIndexTruncatesOnRuneBoundary(t *testing.T) {
	// A multibyte rune straddling the cap must be dropped whole, not cut
	// mid-sequence.
	straddle := strings.Repeat("a", MaxSnippetLen-1) + "éé"
	accented := strings.Repeat("é", MaxSnippetLen+10)
	idx := NewContextIndex(map[string][]string{"A|B": {straddle, accented}})

	snippets, found := idx.Lookup("A", "B", 0)
	if !found {
		t.Fatal("Expected lookup hit")
	}
	for i, s := range snippets {
		if !utf8.ValidString(s) {
			t.Errorf("Snippet %d is not valid UTF-8 after truncation: %q", i, s[len(s)-4:])
		}
		if n := utf8.RuneCountInString(s); n != MaxSnippetLen {
			t.Errorf("Snippet %d truncated to %d runes, want %d", i, n, MaxSnippetLen)
		}
	}
	if !strings.HasSuffix(snippets[0], "aé") {
		t.Errorf("Expected the first straddling rune kept whole, got suffix %q", snippets[0][len(snippets[0])-4:])
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	idx := NewContextIndex(map[string][]string{"A|B": {"one", "two"}})

	snippets, _ := idx.Lookup("A", "B", 0)
	snippets[0] = "mutated"

	again, _ := idx.Lookup("A", "B", 0)
	if again[0] != "one" {
		t.Error("Lookup must not hand out the index's backing slice")
	}
}
