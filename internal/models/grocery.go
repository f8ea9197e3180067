package models

// RecipeRef records which recipe contributed demand for a grocery item
type RecipeRef struct {
	RecipeID    int     `json:"recipe_id"`
	RecipeTitle string  `json:"recipe_title"`
	Quantity    float64 `json:"quantity"`
}

// ConsolidatedGroceryItem is aggregated cross-recipe ingredient demand
// minus on-hand pantry stock. Built fresh on every generation call,
// never persisted.
type ConsolidatedGroceryItem struct {
	Name           string      `json:"name"`
	TotalQuantity  float64     `json:"total_quantity"`
	Unit           string      `json:"unit,omitempty"`
	Category       Category    `json:"category"`
	FromRecipes    []RecipeRef `json:"from_recipes"`
	InPantry       bool        `json:"in_pantry"`
	PantryQuantity float64     `json:"pantry_quantity"`
	NeedToBuy      float64     `json:"need_to_buy"`
}

// GenerateGroceryListRequest selects the recipes to consolidate
type GenerateGroceryListRequest struct {
	RecipeIDs []int `json:"recipe_ids"`
}
