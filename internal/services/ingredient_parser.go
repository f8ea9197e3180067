package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/models"
)

// IngredientParser parses recipe ingredient text — markdown checkbox
// lists, bullet lists, or plain lines — into structured ingredients
type IngredientParser struct {
	checkboxPattern *regexp.Regexp
	bulletPattern   *regexp.Regexp
	quantityPattern *regexp.Regexp
	rangePattern    *regexp.Regexp
	fractionPattern *regexp.Regexp
	unitPattern     *regexp.Regexp
}

// Unicode vulgar fractions mapping
var unicodeFractions = map[rune]float64{
	'¼': 0.25,     // ¼
	'½': 0.5,      // ½
	'¾': 0.75,     // ¾
	'⅓': 0.333333, // ⅓
	'⅔': 0.666667, // ⅔
	'⅕': 0.2,      // ⅕
	'⅖': 0.4,      // ⅖
	'⅗': 0.6,      // ⅗
	'⅘': 0.8,      // ⅘
	'⅙': 0.166667, // ⅙
	'⅚': 0.833333, // ⅚
	'⅛': 0.125,    // ⅛
	'⅜': 0.375,    // ⅜
	'⅝': 0.625,    // ⅝
	'⅞': 0.875,    // ⅞
}

// Unit normalization map
var unitNormalization = map[string]string{
	// Volume - small
	"tsp":          "teaspoon",
	"teaspoons":    "teaspoon",
	"tbsp":         "tablespoon",
	"tbs":          "tablespoon",
	"tablespoons":  "tablespoon",
	"fl oz":        "fluid ounce",
	"floz":         "fluid ounce",
	"fluid ounces": "fluid ounce",

	// Volume - medium
	"c":      "cup",
	"cups":   "cup",
	"pt":     "pint",
	"pints":  "pint",
	"qt":     "quart",
	"quarts": "quart",

	// Volume - large
	"gal":         "gallon",
	"gallons":     "gallon",
	"l":           "liter",
	"liters":      "liter",
	"litres":      "liter",
	"ml":          "milliliter",
	"milliliters": "milliliter",

	// Weight
	"oz":        "ounce",
	"ounces":    "ounce",
	"lb":        "pound",
	"lbs":       "pound",
	"pounds":    "pound",
	"g":         "gram",
	"grams":     "gram",
	"kg":        "kilogram",
	"kilograms": "kilogram",

	// Count
	"pc":       "piece",
	"pcs":      "piece",
	"pieces":   "piece",
	"ct":       "count",
	"ea":       "each",
	"pk":       "pack",
	"pkg":      "package",
	"packages": "package",
	"bunches":  "bunch",
	"heads":    "head",
	"cloves":   "clove",
	"sprigs":   "sprig",
	"stalks":   "stalk",
	"slices":   "slice",
	"cans":     "can",
	"jars":     "jar",
	"bags":     "bag",
	"boxes":    "box",
	"bottles":  "bottle",
	"sticks":   "stick",
	"dashes":   "dash",
	"pinches":  "pinch",
}

// NewIngredientParser creates a new parser instance
func NewIngredientParser() *IngredientParser {
	return &IngredientParser{
		// Match markdown checkbox lines: - [ ] or - [x]
		checkboxPattern: regexp.MustCompile(`^\s*-\s*\[[ xX]?\]\s*(.+)$`),

		// Match bullet lines: - item or * item
		bulletPattern: regexp.MustCompile(`^\s*[-*]\s+(.+)$`),

		// Match quantity at start: 1, 1.5, etc.
		quantityPattern: regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*`),

		// Match quantity range: 2.5 - 3
		rangePattern: regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)\s*`),

		// Match ASCII fraction: 1/2, 3/4
		fractionPattern: regexp.MustCompile(`^(\d+)/(\d+)\s*`),

		// Match units (case insensitive) - order matters, longer patterns first
		unitPattern: regexp.MustCompile(`(?i)^(tablespoons?|teaspoons?|fluid ounces?|milliliters?|kilograms?|packages?|gallons?|bottles?|bunches?|ounces?|pounds?|pieces?|liters?|sprigs?|stalks?|slices?|cloves?|quarts?|pinch(?:es)?|pints?|dashes?|sticks?|heads?|grams?|boxes?|cups?|cans?|jars?|bags?|tbsp|floz|tsp|tbs|pkg|gal|cup|qt|pt|oz|lb|ml|kg|ct|ea|pk|pc|g|l|c)\b\s*`),
	}
}

// Parse parses ingredient text and returns structured ingredients.
// Checkbox and bullet markers are stripped; other non-empty lines are
// taken as-is, so pasted plain text works too.
func (p *IngredientParser) Parse(content string) []models.RecipeIngredient {
	lines := strings.Split(content, "\n")
	var ingredients []models.RecipeIngredient

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if matches := p.checkboxPattern.FindStringSubmatch(line); len(matches) == 2 {
			line = matches[1]
		} else if matches := p.bulletPattern.FindStringSubmatch(line); len(matches) == 2 {
			line = matches[1]
		}

		ing := p.parseLine(strings.TrimSpace(line))
		if ing.Name == "" {
			continue
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients
}

// parseLine parses a single ingredient line into structured data
func (p *IngredientParser) parseLine(content string) models.RecipeIngredient {
	var ing models.RecipeIngredient

	remaining, quantity, hasQuantity := p.extractQuantity(content)
	if hasQuantity {
		ing.Quantity = &quantity
	}

	remaining, ing.Unit = p.extractUnit(remaining)
	remaining = p.stripNotes(remaining)
	ing.Name = p.cleanName(remaining)
	ing.Category = engine.Categorize(ing.Name)

	return ing
}

// extractQuantity handles all quantity formats
func (p *IngredientParser) extractQuantity(s string) (string, float64, bool) {
	s = strings.TrimSpace(s)

	// Check for range first (e.g., "2.5 - 3")
	if matches := p.rangePattern.FindStringSubmatch(s); len(matches) == 3 {
		low, _ := strconv.ParseFloat(matches[1], 64)
		high, _ := strconv.ParseFloat(matches[2], 64)
		return strings.TrimSpace(s[len(matches[0]):]), (low + high) / 2, true
	}

	// Check for whole number + Unicode fraction (e.g., "1 ½")
	wholePattern := regexp.MustCompile(`^(\d+)\s+`)
	if matches := wholePattern.FindStringSubmatch(s); len(matches) == 2 {
		afterWhole := strings.TrimSpace(s[len(matches[0]):])
		rest, fracQty, ok := p.extractUnicodeFraction(afterWhole)
		if ok {
			whole, _ := strconv.ParseFloat(matches[1], 64)
			return rest, whole + fracQty, true
		}
	}

	// Check for whole number + ASCII fraction (e.g., "1 1/2")
	wholeAndFraction := regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s*`)
	if matches := wholeAndFraction.FindStringSubmatch(s); len(matches) == 4 {
		whole, _ := strconv.ParseFloat(matches[1], 64)
		num, _ := strconv.ParseFloat(matches[2], 64)
		denom, _ := strconv.ParseFloat(matches[3], 64)
		if denom != 0 {
			return strings.TrimSpace(s[len(matches[0]):]), whole + num/denom, true
		}
	}

	// Check for Unicode fraction at the start
	if rest, fracQty, ok := p.extractUnicodeFraction(s); ok {
		return rest, fracQty, true
	}

	// Check for simple fraction (e.g., "1/2")
	if matches := p.fractionPattern.FindStringSubmatch(s); len(matches) == 3 {
		num, _ := strconv.ParseFloat(matches[1], 64)
		denom, _ := strconv.ParseFloat(matches[2], 64)
		if denom != 0 {
			return strings.TrimSpace(s[len(matches[0]):]), num / denom, true
		}
	}

	// Check for decimal or whole number (e.g., "1.5", "2")
	if matches := p.quantityPattern.FindStringSubmatch(s); len(matches) == 2 {
		qty, _ := strconv.ParseFloat(matches[1], 64)
		return strings.TrimSpace(s[len(matches[0]):]), qty, true
	}

	return s, 0, false
}

// extractUnicodeFraction handles Unicode vulgar fractions
func (p *IngredientParser) extractUnicodeFraction(s string) (string, float64, bool) {
	runes := []rune(s)
	idx := 0
	for idx < len(runes) && unicode.IsSpace(runes[idx]) {
		idx++
	}
	if idx >= len(runes) {
		return s, 0, false
	}
	if val, ok := unicodeFractions[runes[idx]]; ok {
		return strings.TrimSpace(string(runes[idx+1:])), val, true
	}
	return s, 0, false
}

// extractUnit extracts and normalizes the unit
func (p *IngredientParser) extractUnit(s string) (string, string) {
	s = strings.TrimSpace(s)

	if matches := p.unitPattern.FindStringSubmatch(s); len(matches) >= 2 {
		unit := strings.ToLower(matches[1])
		if normalized, ok := unitNormalization[unit]; ok {
			unit = normalized
		}
		return strings.TrimSpace(s[len(matches[0]):]), unit
	}

	return s, ""
}

// stripNotes removes parenthetical content and trailing comma clauses
// ("2 cups flour (sifted), plus more for dusting")
func (p *IngredientParser) stripNotes(s string) string {
	parenPattern := regexp.MustCompile(`\(([^)]+)\)`)
	s = parenPattern.ReplaceAllString(s, "")

	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// cleanName cleans up the ingredient name
func (p *IngredientParser) cleanName(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "of ") {
		s = s[3:]
	}
	s = strings.TrimRight(s, ".,;:-_")

	spacePattern := regexp.MustCompile(`\s+`)
	s = spacePattern.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
