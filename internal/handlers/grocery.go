package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/models"
)

// GroceryListResponse is a freshly generated shopping list
type GroceryListResponse struct {
	Items       []models.ConsolidatedGroceryItem `json:"items"`
	RecipeCount int                              `json:"recipe_count"`
	ToBuyCount  int                              `json:"to_buy_count"`
}

// GenerateGroceryList consolidates ingredient demand across the chosen
// recipes, subtracts pantry stock, and returns the list sorted in
// store-walk category order. The list is computed fresh each call and
// never persisted.
func (h *Handler) GenerateGroceryList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.GenerateGroceryListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.RecipeIDs) == 0 {
		return Error(c, fiber.StatusBadRequest, "recipe_ids is required")
	}

	recipes, err := h.db.GetRecipesByIDs(c.Context(), userID, req.RecipeIDs)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load recipes")
	}
	if len(recipes) == 0 {
		return Error(c, fiber.StatusNotFound, "no matching recipes found")
	}

	pantry, err := h.db.ListPantryItems(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list pantry items")
	}

	items := engine.ConsolidateGroceries(recipes, pantry)
	if items == nil {
		items = []models.ConsolidatedGroceryItem{}
	}

	toBuy := 0
	for _, item := range items {
		if item.NeedToBuy > 0 {
			toBuy++
		}
	}

	return Success(c, GroceryListResponse{
		Items:       items,
		RecipeCount: len(recipes),
		ToBuyCount:  toBuy,
	})
}
