package engine

import (
	"strings"

	"github.com/calloway/larder/internal/models"
)

// categoryKeywords pairs a category with the keywords that place an
// item into it. The table order is significant: keyword lists overlap
// ("tomato" could be produce or canned) and the first category whose
// list matches wins, so produce is checked before canned and pantry.
type categoryKeywords struct {
	category models.Category
	keywords []string
}

var categoryTable = []categoryKeywords{
	{models.CategoryProduce, []string{
		"apple", "banana", "orange", "lemon", "lime", "grape", "berry", "strawberr",
		"blueberr", "raspberr", "melon", "peach", "pear", "plum", "mango", "pineapple",
		"avocado", "tomato", "potato", "onion", "garlic", "carrot", "celery", "lettuce",
		"spinach", "kale", "cabbage", "broccoli", "cauliflower", "pepper", "cucumber",
		"zucchini", "squash", "mushroom", "corn", "pea", "green bean", "asparagus",
		"herb", "cilantro", "parsley", "basil", "mint", "ginger", "scallion", "leek",
	}},
	{models.CategoryMeatSeafood, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "bacon", "sausage", "ham",
		"steak", "ribs", "salmon", "tuna", "shrimp", "fish", "tilapia", "cod",
		"crab", "lobster", "scallop", "ground meat",
	}},
	{models.CategoryDairyEggs, []string{
		"milk", "cheese", "yogurt", "butter", "cream", "egg", "sour cream",
		"cottage cheese", "half and half", "mozzarella", "cheddar", "parmesan",
	}},
	{models.CategoryBakery, []string{
		"bread", "bagel", "bun", "roll", "tortilla", "pita", "croissant", "muffin",
		"cake", "donut", "baguette", "naan",
	}},
	{models.CategoryFrozen, []string{
		"frozen", "ice cream", "popsicle", "pizza",
	}},
	{models.CategoryCanned, []string{
		"canned", "can of", "soup", "tomato sauce", "tomato paste", "beans",
		"chickpea", "coconut milk", "broth", "stock", "tuna can",
	}},
	{models.CategoryPantry, []string{
		"flour", "sugar", "rice", "pasta", "noodle", "cereal", "oat", "oil",
		"vinegar", "salt", "spice", "seasoning", "sauce", "ketchup", "mustard",
		"mayo", "honey", "syrup", "peanut butter", "jam", "jelly", "cracker",
		"chip", "snack", "coffee", "tea", "baking", "vanilla", "cocoa", "lentil",
		"quinoa", "nut", "almond", "walnut", "raisin",
	}},
}

// Categorize assigns a category to an item name by keyword lookup.
// Unknown names fall through to other.
func Categorize(name string) models.Category {
	lower := strings.ToLower(name)
	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return models.CategoryOther
}

// expiryRule maps a name keyword to a default shelf life in days
type expiryRule struct {
	keyword string
	days    int
}

// expiryDefaults holds per-category shelf-life rules. Keys are looked
// up against the lowercased item name by substring.
var expiryDefaults = map[models.Category][]expiryRule{
	models.CategoryProduce: {
		{"banana", 5}, {"berry", 4}, {"strawberr", 4}, {"lettuce", 7},
		{"spinach", 5}, {"herb", 5}, {"cilantro", 5}, {"avocado", 4},
		{"mushroom", 7}, {"tomato", 6}, {"apple", 21}, {"orange", 14},
		{"potato", 30}, {"onion", 30}, {"garlic", 60}, {"carrot", 21},
	},
	models.CategoryMeatSeafood: {
		{"ground", 2}, {"fish", 2}, {"salmon", 2}, {"shrimp", 2},
		{"chicken", 2}, {"bacon", 7}, {"sausage", 5}, {"ham", 5},
	},
	models.CategoryDairyEggs: {
		{"milk", 7}, {"yogurt", 14}, {"egg", 28}, {"butter", 60},
		{"cream", 7}, {"cheese", 21},
	},
	models.CategoryBakery: {
		{"bread", 5}, {"bagel", 5}, {"tortilla", 14}, {"roll", 4},
	},
	models.CategoryFrozen: {
		{"ice cream", 90}, {"frozen", 180},
	},
	models.CategoryCanned: {
		{"soup", 730}, {"beans", 730}, {"canned", 730},
	},
	models.CategoryPantry: {
		{"flour", 365}, {"sugar", 730}, {"rice", 730}, {"pasta", 730},
		{"oil", 365}, {"cereal", 180}, {"spice", 730},
	},
}

// DefaultExpiryDays returns the default shelf life for an item, looking
// at its own category's rules first and then every category's rules in
// the fixed table order. The fallback tie-break is first match in
// iteration order and is implementation-defined, not a contract.
func DefaultExpiryDays(name string, category models.Category) (int, bool) {
	lower := strings.ToLower(name)

	if rules, ok := expiryDefaults[category]; ok {
		for _, r := range rules {
			if strings.Contains(lower, r.keyword) {
				return r.days, true
			}
		}
	}

	for _, entry := range categoryTable {
		if entry.category == category {
			continue
		}
		for _, r := range expiryDefaults[entry.category] {
			if strings.Contains(lower, r.keyword) {
				return r.days, true
			}
		}
	}

	return 0, false
}
