package models

import (
	"time"
)

// Recipe represents a stored recipe with its ingredient list
type Recipe struct {
	ID           int                `json:"id"`
	UserID       int                `json:"user_id"`
	Title        string             `json:"title"`
	Servings     int                `json:"servings"`
	Instructions *string            `json:"instructions,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RecipeIngredient is one ingredient line of a recipe. The engine never
// mutates these; they are a snapshot of demand.
type RecipeIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Category Category `json:"category,omitempty"`
}

// CreateRecipeRequest is the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string             `json:"title"`
	Servings     int                `json:"servings"`
	Instructions *string            `json:"instructions,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
}

// UpdateRecipeRequest is the request body for updating a recipe
type UpdateRecipeRequest struct {
	Title        *string            `json:"title,omitempty"`
	Servings     *int               `json:"servings,omitempty"`
	Instructions *string            `json:"instructions,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
}

// ImportRecipeRequest is the request body for importing a recipe from
// plain or markdown text
type ImportRecipeRequest struct {
	Title       string `json:"title"`
	Servings    int    `json:"servings"`
	Ingredients string `json:"ingredients"`
}

// CookRecipeRequest is the request body for cooking a recipe
type CookRecipeRequest struct {
	ServingsCooked float64 `json:"servings_cooked"`
}

// UndoCookRequest is the request body for reversing a deduction
type UndoCookRequest struct {
	UndoToken string `json:"undo_token"`
}
