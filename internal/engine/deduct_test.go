package engine

import (
	"testing"

	"github.com/calloway/larder/internal/models"
)

func TestDeductRecipeScaled(t *testing.T) {
	recipe := models.Recipe{
		ID: 1, Title: "Omelette", Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{Name: "eggs", Quantity: floatPtr(2)},
		},
	}
	pantry := []models.PantryItem{
		{ID: 7, Name: "eggs", Quantity: floatPtr(3)},
	}

	// Half the recipe: 2 eggs * 0.5 = 1 egg
	result := DeductRecipe(recipe, pantry, 2, 4)

	if len(result.Deducted) != 1 {
		t.Fatalf("len(Deducted) = %d, want 1", len(result.Deducted))
	}
	d := result.Deducted[0]
	if d.PantryItemID != 7 || d.Deducted != 1 || d.Remaining != 2 || d.Removed {
		t.Errorf("Deducted = %+v, want item 7 deducted 1 remaining 2 not removed", d)
	}

	if len(result.Changes) != 1 {
		t.Fatalf("len(Changes) = %d, want 1", len(result.Changes))
	}
	if result.Changes[0].NewQuantity != 2 || result.Changes[0].Delete {
		t.Errorf("Changes[0] = %+v, want NewQuantity 2 Delete false", result.Changes[0])
	}

	if len(result.Snapshot) != 1 {
		t.Fatalf("len(Snapshot) = %d, want 1", len(result.Snapshot))
	}
	if result.Snapshot[0].PantryItemID != 7 || *result.Snapshot[0].PriorQuantity != 3 {
		t.Errorf("Snapshot[0] = %+v, want item 7 prior 3", result.Snapshot[0])
	}
}

func TestDeductRecipeRemovesAtZero(t *testing.T) {
	recipe := models.Recipe{
		ID: 1, Title: "Toast", Servings: 1,
		Ingredients: []models.RecipeIngredient{
			{Name: "bread", Quantity: floatPtr(2)},
		},
	}
	pantry := []models.PantryItem{
		{ID: 3, Name: "bread", Quantity: floatPtr(1)},
	}

	result := DeductRecipe(recipe, pantry, 1, 1)

	if len(result.Deducted) != 1 {
		t.Fatalf("len(Deducted) = %d, want 1", len(result.Deducted))
	}
	// Quantities never go negative: only the available 1 comes off
	d := result.Deducted[0]
	if d.Deducted != 1 || d.Remaining != 0 || !d.Removed {
		t.Errorf("Deducted = %+v, want deducted 1 remaining 0 removed", d)
	}
	if !result.Changes[0].Delete {
		t.Error("Changes[0].Delete = false, want true")
	}
}

func TestDeductRecipeSkips(t *testing.T) {
	recipe := models.Recipe{
		ID: 1, Title: "Mixed", Servings: 2,
		Ingredients: []models.RecipeIngredient{
			{Name: "saffron", Quantity: floatPtr(1)},
			{Name: "salt"},
			{Name: "olive oil", Quantity: floatPtr(1)},
		},
	}
	pantry := []models.PantryItem{
		{ID: 1, Name: "olive oil"}, // quantity unknown
	}

	result := DeductRecipe(recipe, pantry, 2, 2)

	if len(result.Deducted) != 0 {
		t.Errorf("len(Deducted) = %d, want 0", len(result.Deducted))
	}
	if len(result.Skipped) != 3 {
		t.Fatalf("len(Skipped) = %d, want 3", len(result.Skipped))
	}

	reasons := map[string]string{}
	for _, s := range result.Skipped {
		reasons[s.Name] = s.Reason
	}
	if reasons["saffron"] != "not found in pantry" {
		t.Errorf("saffron reason = %q, want \"not found in pantry\"", reasons["saffron"])
	}
	if reasons["salt"] != "no quantity on ingredient" {
		t.Errorf("salt reason = %q, want \"no quantity on ingredient\"", reasons["salt"])
	}
	if reasons["olive oil"] != "pantry quantity unknown" {
		t.Errorf("olive oil reason = %q, want \"pantry quantity unknown\"", reasons["olive oil"])
	}
}

func TestDeductRecipeFuzzyFallback(t *testing.T) {
	recipe := models.Recipe{
		ID: 1, Title: "Stir Fry", Servings: 2,
		Ingredients: []models.RecipeIngredient{
			{Name: "chicken", Quantity: floatPtr(1)},
		},
	}
	pantry := []models.PantryItem{
		{ID: 5, Name: "chicken breast", Quantity: floatPtr(2)},
	}

	result := DeductRecipe(recipe, pantry, 2, 2)

	if len(result.Deducted) != 1 {
		t.Fatalf("len(Deducted) = %d, want 1", len(result.Deducted))
	}
	if result.Deducted[0].PantryItemID != 5 {
		t.Errorf("matched item = %d, want 5", result.Deducted[0].PantryItemID)
	}
}

func TestDeductRecipeSharedItemSnapshotOnce(t *testing.T) {
	recipe := models.Recipe{
		ID: 1, Title: "Double Butter", Servings: 1,
		Ingredients: []models.RecipeIngredient{
			{Name: "butter", Quantity: floatPtr(1)},
			{Name: "salted butter", Quantity: floatPtr(1)},
		},
	}
	pantry := []models.PantryItem{
		{ID: 9, Name: "butter", Quantity: floatPtr(5)},
	}

	result := DeductRecipe(recipe, pantry, 1, 1)

	if len(result.Deducted) != 2 {
		t.Fatalf("len(Deducted) = %d, want 2", len(result.Deducted))
	}
	// Second deduction sees the quantity left by the first
	if result.Deducted[1].Remaining != 3 {
		t.Errorf("second remaining = %v, want 3", result.Deducted[1].Remaining)
	}
	// One snapshot per touched item, holding the original quantity
	if len(result.Snapshot) != 1 {
		t.Fatalf("len(Snapshot) = %d, want 1", len(result.Snapshot))
	}
	if *result.Snapshot[0].PriorQuantity != 5 {
		t.Errorf("prior = %v, want 5", *result.Snapshot[0].PriorQuantity)
	}
}

func TestDeductRecipeZeroServingsOriginal(t *testing.T) {
	recipe := models.Recipe{
		ID: 1, Title: "No Servings", Servings: 0,
		Ingredients: []models.RecipeIngredient{
			{Name: "rice", Quantity: floatPtr(1)},
		},
	}
	pantry := []models.PantryItem{
		{ID: 2, Name: "rice", Quantity: floatPtr(4)},
	}

	// Unscalable serving counts fall back to the recipe as written
	result := DeductRecipe(recipe, pantry, 3, 0)

	if len(result.Deducted) != 1 || result.Deducted[0].Deducted != 1 {
		t.Fatalf("Deducted = %+v, want one deduction of 1", result.Deducted)
	}
}
