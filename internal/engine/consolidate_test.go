package engine

import (
	"testing"

	"github.com/calloway/larder/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestConsolidateGroceries(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Pancakes", Ingredients: []models.RecipeIngredient{
			{Name: "flour", Quantity: floatPtr(1), Unit: "cup"},
			{Name: "eggs", Quantity: floatPtr(2)},
		}},
		{ID: 2, Title: "Bread", Ingredients: []models.RecipeIngredient{
			{Name: "flour", Quantity: floatPtr(1.5), Unit: "cup"},
		}},
	}
	pantry := []models.PantryItem{
		{ID: 10, Name: "flour", Quantity: floatPtr(2)},
	}

	items := ConsolidateGroceries(recipes, pantry)

	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	var flour, eggs *models.ConsolidatedGroceryItem
	for i := range items {
		switch Normalize(items[i].Name) {
		case "flour":
			flour = &items[i]
		case "egg":
			eggs = &items[i]
		}
	}
	if flour == nil || eggs == nil {
		t.Fatalf("expected flour and eggs lines, got %+v", items)
	}

	if flour.TotalQuantity != 2.5 {
		t.Errorf("flour total = %v, want 2.5", flour.TotalQuantity)
	}
	if !flour.InPantry || flour.PantryQuantity != 2 {
		t.Errorf("flour pantry = (%v, %v), want (true, 2)", flour.InPantry, flour.PantryQuantity)
	}
	if flour.NeedToBuy != 0.5 {
		t.Errorf("flour needToBuy = %v, want 0.5", flour.NeedToBuy)
	}
	if len(flour.FromRecipes) != 2 {
		t.Errorf("flour fromRecipes = %d entries, want 2", len(flour.FromRecipes))
	}

	if eggs.InPantry {
		t.Error("eggs should not be marked in pantry")
	}
	if eggs.NeedToBuy != 2 {
		t.Errorf("eggs needToBuy = %v, want 2", eggs.NeedToBuy)
	}
}

func TestConsolidateGroceriesNeedNeverNegative(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Omelette", Ingredients: []models.RecipeIngredient{
			{Name: "eggs", Quantity: floatPtr(2)},
		}},
	}
	pantry := []models.PantryItem{
		{ID: 1, Name: "eggs", Quantity: floatPtr(12)},
	}

	items := ConsolidateGroceries(recipes, pantry)

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].NeedToBuy != 0 {
		t.Errorf("needToBuy = %v, want 0", items[0].NeedToBuy)
	}
}

func TestConsolidateGroceriesCategoryOrder(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Dinner", Ingredients: []models.RecipeIngredient{
			{Name: "pasta", Quantity: floatPtr(1)},
			{Name: "chicken breast", Quantity: floatPtr(1)},
			{Name: "spinach", Quantity: floatPtr(1)},
		}},
	}

	items := ConsolidateGroceries(recipes, nil)

	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	want := []models.Category{models.CategoryProduce, models.CategoryMeatSeafood, models.CategoryPantry}
	for i, item := range items {
		if item.Category != want[i] {
			t.Errorf("items[%d].Category = %q, want %q", i, item.Category, want[i])
		}
	}
}

func TestConsolidateGroceriesMergesAcrossQualifiers(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Soup", Ingredients: []models.RecipeIngredient{
			{Name: "chopped onions", Quantity: floatPtr(1)},
		}},
		{ID: 2, Title: "Stir Fry", Ingredients: []models.RecipeIngredient{
			{Name: "onion", Quantity: floatPtr(2)},
		}},
	}

	items := ConsolidateGroceries(recipes, nil)

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].TotalQuantity != 3 {
		t.Errorf("total = %v, want 3", items[0].TotalQuantity)
	}
	// The first contributing recipe names the line
	if items[0].Name != "chopped onions" {
		t.Errorf("name = %q, want \"chopped onions\"", items[0].Name)
	}
}

func TestConsolidateGroceriesPantryDuplicatesSum(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, Title: "Bake", Ingredients: []models.RecipeIngredient{
			{Name: "flour", Quantity: floatPtr(5)},
		}},
	}
	pantry := []models.PantryItem{
		{ID: 1, Name: "flour", Quantity: floatPtr(1)},
		{ID: 2, Name: "Flour", Quantity: floatPtr(2)},
	}

	items := ConsolidateGroceries(recipes, pantry)

	if items[0].PantryQuantity != 3 {
		t.Errorf("pantryQuantity = %v, want 3", items[0].PantryQuantity)
	}
	if items[0].NeedToBuy != 2 {
		t.Errorf("needToBuy = %v, want 2", items[0].NeedToBuy)
	}
}
