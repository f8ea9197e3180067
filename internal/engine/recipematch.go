package engine

import (
	"math"
	"sort"

	"github.com/calloway/larder/internal/models"
)

// MatchedIngredient is a recipe ingredient found in the pantry
type MatchedIngredient struct {
	Name           string `json:"name"`
	PantryItemID   int    `json:"pantry_item_id"`
	PantryItemName string `json:"pantry_item_name"`
	HasEnough      bool   `json:"has_enough"`
}

// RecipeMatch scores one recipe against current pantry stock
type RecipeMatch struct {
	RecipeID         int                 `json:"recipe_id"`
	RecipeTitle      string              `json:"recipe_title"`
	MatchPercentage  int                 `json:"match_percentage"`
	TotalIngredients int                 `json:"total_ingredients"`
	Have             []MatchedIngredient `json:"have"`
	Missing          []string            `json:"missing"`
}

// MatchRecipesToPantry scores each recipe by the fraction of its
// ingredients present in the pantry, using the loose matcher so
// substitutions count ("penne" in the pantry satisfies "pasta").
//
// hasEnough is false only when both sides carry a quantity, the units
// are identical, and stock falls short; differing units cannot be
// compared and are assumed sufficient. Recipes with no ingredients are
// excluded, and only recipes at or above minMatchPercentage are kept,
// sorted by percentage descending with ties in input order.
func MatchRecipesToPantry(recipes []models.Recipe, pantry []models.PantryItem, minMatchPercentage int) []RecipeMatch {
	var matches []RecipeMatch

	for _, r := range recipes {
		if len(r.Ingredients) == 0 {
			continue
		}

		match := RecipeMatch{
			RecipeID:         r.ID,
			RecipeTitle:      r.Title,
			TotalIngredients: len(r.Ingredients),
		}

		for _, ing := range r.Ingredients {
			found := -1
			for i, p := range pantry {
				if MatchLoose(ing.Name, p.Name) {
					found = i
					break
				}
			}
			if found < 0 {
				match.Missing = append(match.Missing, ing.Name)
				continue
			}

			p := pantry[found]
			hasEnough := true
			if ing.Quantity != nil && p.Quantity != nil &&
				ing.Unit != "" && p.Unit == ing.Unit &&
				*p.Quantity < *ing.Quantity {
				hasEnough = false
			}
			match.Have = append(match.Have, MatchedIngredient{
				Name:           ing.Name,
				PantryItemID:   p.ID,
				PantryItemName: p.Name,
				HasEnough:      hasEnough,
			})
		}

		match.MatchPercentage = int(math.Round(100 * float64(len(match.Have)) / float64(match.TotalIngredients)))
		if match.MatchPercentage >= minMatchPercentage {
			matches = append(matches, match)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercentage > matches[j].MatchPercentage
	})

	return matches
}
