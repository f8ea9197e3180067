package engine

import (
	"strings"
)

// minSubstringLen guards substring matching against short tokens:
// "oil" must not match "foil".
const minSubstringLen = 4

// substitutionGroups are families of names treated as the same item for
// recipe-to-pantry matching. Two names in one group match regardless of
// the substring rules. Entries are compared in normalized form.
var substitutionGroups = [][]string{
	{"chicken", "chicken breast", "chicken thigh", "chicken leg", "chicken drumstick", "rotisserie chicken"},
	{"beef", "beef chuck", "beef sirloin", "stew beef", "steak"},
	{"pork", "pork loin", "pork chop", "pork shoulder"},
	{"pasta", "spaghetti", "penne", "fusilli", "macaroni", "linguine", "fettuccine", "rigatoni"},
	{"rice", "white rice", "brown rice", "jasmine rice", "basmati rice", "long grain rice"},
	{"onion", "yellow onion", "red onion", "white onion", "sweet onion"},
	{"pepper", "bell pepper", "red bell pepper", "green bell pepper", "yellow bell pepper"},
	{"tomato", "roma tomato", "cherry tomato", "grape tomato", "plum tomato"},
	{"potato", "russet potato", "yukon gold potato", "red potato", "baby potato"},
	{"milk", "whole milk", "skim milk", "2 milk", "1 milk"},
	{"cheese", "cheddar", "cheddar cheese", "mozzarella", "parmesan", "monterey jack"},
	{"oil", "olive oil", "vegetable oil", "canola oil", "avocado oil"},
	{"vinegar", "white vinegar", "apple cider vinegar", "balsamic vinegar", "rice vinegar"},
	{"flour", "all purpose flour", "bread flour", "wheat flour"},
	{"sugar", "white sugar", "granulated sugar", "cane sugar"},
	{"butter", "stick butter", "sweet cream butter"},
	{"broth", "chicken broth", "beef broth", "vegetable broth", "chicken stock", "beef stock", "vegetable stock"},
	{"bean", "black bean", "kidney bean", "pinto bean", "cannellini bean"},
	{"lettuce", "romaine", "romaine lettuce", "iceberg lettuce", "green leaf lettuce"},
	{"fish", "salmon", "tilapia", "cod", "halibut"},
}

// substitutionIndex maps a normalized name to its group index
var substitutionIndex = buildSubstitutionIndex()

func buildSubstitutionIndex() map[string]int {
	idx := make(map[string]int)
	for i, group := range substitutionGroups {
		for _, name := range group {
			idx[Normalize(name)] = i
		}
	}
	return idx
}

// Match reports whether two free-text names denote the same item.
// Exact match after normalization wins; otherwise a substring
// relationship is accepted when the shorter side is long enough to be
// meaningful. Symmetric: Match(a, b) == Match(b, a).
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}

	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) < minSubstringLen {
		return false
	}
	return strings.Contains(longer, shorter)
}

// MatchLoose is the richer variant used for recipe-to-pantry matching:
// it accepts everything Match accepts, plus names that normalize into
// the same substitution group ("penne" satisfies "pasta").
func MatchLoose(a, b string) bool {
	if Match(a, b) {
		return true
	}
	ga, okA := substitutionIndex[Normalize(a)]
	gb, okB := substitutionIndex[Normalize(b)]
	return okA && okB && ga == gb
}

// FindBestMatch returns the index of the best candidate for target, or
// -1 when nothing matches. Exact normalized matches always win over
// fuzzy ones; within each tier the first candidate wins.
func FindBestMatch(target string, candidates []string) int {
	nt := Normalize(target)
	if nt == "" {
		return -1
	}
	for i, c := range candidates {
		if Normalize(c) == nt {
			return i
		}
	}
	for i, c := range candidates {
		if Match(target, c) {
			return i
		}
	}
	return -1
}
