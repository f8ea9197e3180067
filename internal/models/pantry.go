package models

import (
	"time"
)

// Category is the fixed set of pantry/grocery categories
type Category string

const (
	CategoryProduce     Category = "produce"
	CategoryMeatSeafood Category = "meat_seafood"
	CategoryDairyEggs   Category = "dairy_eggs"
	CategoryBakery      Category = "bakery"
	CategoryFrozen      Category = "frozen"
	CategoryCanned      Category = "canned"
	CategoryPantry      Category = "pantry"
	CategoryOther       Category = "other"
)

// CategoryOrder is the display order used when sorting grocery lists.
// Items within a category keep insertion order.
var CategoryOrder = []Category{
	CategoryProduce,
	CategoryMeatSeafood,
	CategoryDairyEggs,
	CategoryBakery,
	CategoryFrozen,
	CategoryCanned,
	CategoryPantry,
	CategoryOther,
}

// IsValid checks whether the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryProduce, CategoryMeatSeafood, CategoryDairyEggs, CategoryBakery,
		CategoryFrozen, CategoryCanned, CategoryPantry, CategoryOther:
		return true
	}
	return false
}

// PantryItem represents a single item in a user's pantry
type PantryItem struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user_id"`
	Name       string     `json:"name"`
	Quantity   *float64   `json:"quantity,omitempty"`
	Unit       string     `json:"unit,omitempty"`
	Category   Category   `json:"category"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreatePantryItemRequest is the request body for adding a pantry item
type CreatePantryItemRequest struct {
	Name       string     `json:"name"`
	Quantity   *float64   `json:"quantity,omitempty"`
	Unit       string     `json:"unit,omitempty"`
	Category   Category   `json:"category,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// UpdatePantryItemRequest is the request body for updating a pantry item
type UpdatePantryItemRequest struct {
	Name       *string    `json:"name,omitempty"`
	Quantity   *float64   `json:"quantity,omitempty"`
	Unit       *string    `json:"unit,omitempty"`
	Category   *Category  `json:"category,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// PantryChange is a pending mutation produced by a deduction. The caller
// applies these against the store; the engine never writes itself.
type PantryChange struct {
	ItemID      int     `json:"item_id"`
	NewQuantity float64 `json:"new_quantity"`
	Delete      bool    `json:"delete"`
}
