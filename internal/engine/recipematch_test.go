package engine

import (
	"testing"

	"github.com/calloway/larder/internal/models"
)

func TestMatchRecipesToPantry(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Pasta Night", Ingredients: []models.RecipeIngredient{
			{Name: "pasta", Quantity: floatPtr(1), Unit: "box"},
			{Name: "tomato sauce", Quantity: floatPtr(1), Unit: "jar"},
			{Name: "parmesan", Quantity: floatPtr(1)},
		}},
	}
	pantry := []models.PantryItem{
		{ID: 1, Name: "penne", Quantity: floatPtr(2), Unit: "box"},
		{ID: 2, Name: "tomato sauce", Quantity: floatPtr(1), Unit: "jar"},
	}

	matches := MatchRecipesToPantry(recipes, pantry, 0)

	if len(matches) != 1 {
		t.Fatalf("len(matches) = %d, want 1", len(matches))
	}
	m := matches[0]

	// penne satisfies pasta through the substitution group
	if len(m.Have) != 2 {
		t.Fatalf("len(Have) = %d, want 2", len(m.Have))
	}
	if m.Have[0].PantryItemName != "penne" {
		t.Errorf("Have[0].PantryItemName = %q, want \"penne\"", m.Have[0].PantryItemName)
	}
	if len(m.Missing) != 1 || m.Missing[0] != "parmesan" {
		t.Errorf("Missing = %v, want [parmesan]", m.Missing)
	}
	if m.MatchPercentage != 67 {
		t.Errorf("MatchPercentage = %d, want 67", m.MatchPercentage)
	}
}

func TestMatchRecipesToPantryHasEnough(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Bake", Ingredients: []models.RecipeIngredient{
			{Name: "flour", Quantity: floatPtr(3), Unit: "cup"},
			{Name: "sugar", Quantity: floatPtr(2), Unit: "cup"},
			{Name: "butter", Quantity: floatPtr(2), Unit: "stick"},
		}},
	}
	pantry := []models.PantryItem{
		{ID: 1, Name: "flour", Quantity: floatPtr(1), Unit: "cup"}, // short, same unit
		{ID: 2, Name: "sugar", Quantity: floatPtr(1), Unit: "bag"}, // short, different unit
		{ID: 3, Name: "butter", Quantity: floatPtr(4), Unit: "stick"},
	}

	matches := MatchRecipesToPantry(recipes, pantry, 0)

	if len(matches) != 1 || len(matches[0].Have) != 3 {
		t.Fatalf("matches = %+v, want 1 match with 3 have entries", matches)
	}

	byName := map[string]MatchedIngredient{}
	for _, h := range matches[0].Have {
		byName[h.Name] = h
	}

	if byName["flour"].HasEnough {
		t.Error("flour HasEnough = true, want false (same unit, stock short)")
	}
	// Differing units cannot be compared and are assumed sufficient
	if !byName["sugar"].HasEnough {
		t.Error("sugar HasEnough = false, want true (units differ)")
	}
	if !byName["butter"].HasEnough {
		t.Error("butter HasEnough = false, want true")
	}
}

func TestMatchRecipesToPantryFilterAndSort(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Empty"},
		{ID: 2, Title: "Half", Ingredients: []models.RecipeIngredient{
			{Name: "rice", Quantity: floatPtr(1)},
			{Name: "saffron", Quantity: floatPtr(1)},
		}},
		{ID: 3, Title: "Full", Ingredients: []models.RecipeIngredient{
			{Name: "rice", Quantity: floatPtr(1)},
		}},
	}
	pantry := []models.PantryItem{
		{ID: 1, Name: "rice", Quantity: floatPtr(5)},
	}

	matches := MatchRecipesToPantry(recipes, pantry, 50)

	// The empty recipe is excluded outright; both others clear 50%
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].RecipeID != 3 || matches[1].RecipeID != 2 {
		t.Errorf("order = [%d, %d], want [3, 2]", matches[0].RecipeID, matches[1].RecipeID)
	}
	if matches[0].MatchPercentage != 100 || matches[1].MatchPercentage != 50 {
		t.Errorf("percentages = [%d, %d], want [100, 50]",
			matches[0].MatchPercentage, matches[1].MatchPercentage)
	}

	// A higher floor drops the partial match
	strict := MatchRecipesToPantry(recipes, pantry, 80)
	if len(strict) != 1 || strict[0].RecipeID != 3 {
		t.Errorf("strict matches = %+v, want only recipe 3", strict)
	}
}
