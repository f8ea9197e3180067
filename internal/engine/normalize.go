package engine

import (
	"strings"
)

// qualifierWords are preparation and marketing words that carry no
// identity: "fresh chopped onion" and "onion" are the same item.
var qualifierWords = map[string]struct{}{
	"fresh":    {},
	"dried":    {},
	"chopped":  {},
	"minced":   {},
	"diced":    {},
	"sliced":   {},
	"whole":    {},
	"large":    {},
	"small":    {},
	"medium":   {},
	"optional": {},
	"organic":  {},
	"boneless": {},
	"skinless": {},
	"raw":      {},
	"cooked":   {},
	"frozen":   {},
	"canned":   {},
	"ground":   {},
	"extra":    {},
	"virgin":   {},
	"lean":     {},
	"fatty":    {},
	"nonfat":   {},
	"lowfat":   {},
	"salted":   {},
	"unsalted": {},
}

// Normalize canonicalizes an item or ingredient name for comparison.
// The result is for matching only, never for display. Collisions are
// intentional; they are what make fuzzy matching work.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	// Strip everything that is not a letter, digit, or space
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == ' ' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	// Collapse whitespace and drop qualifier words
	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, ok := qualifierWords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	out := strings.Join(kept, " ")

	// Crude singularizer: strip a single trailing "s". "tomatoes" and
	// "tomatoe" collide, which is fine; "s" itself must not vanish.
	if len(out) > 1 && strings.HasSuffix(out, "s") {
		out = out[:len(out)-1]
	}

	return out
}

// HistoryKey is the lighter normalization used to group purchase-event
// history: lowercase and trimmed, qualifiers kept. Receipt names are
// already terse; stripping qualifiers would merge distinct staples.
func HistoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
