package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/calloway/larder/internal/database"
	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/models"
	"github.com/calloway/larder/internal/undo"
)

// CookRecipeResponse reports the outcome of cooking a recipe
type CookRecipeResponse struct {
	Deducted      []engine.DeductedItem      `json:"deducted"`
	Skipped       []engine.SkippedIngredient `json:"skipped"`
	UndoToken     string                     `json:"undo_token,omitempty"`
	UndoExpiresIn int                        `json:"undo_expires_in_seconds,omitempty"`
}

// UndoCookResponse reports how much of a deduction could be restored
type UndoCookResponse struct {
	RestoredCount int `json:"restored_count"`
	MissingCount  int `json:"missing_count"`
}

// CookRecipe deducts a recipe's scaled ingredient demand from the
// pantry and hands back a short-lived undo token
func (h *Handler) CookRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	var req models.CookRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.ServingsCooked < 0 {
		return Error(c, fiber.StatusBadRequest, "servings_cooked cannot be negative")
	}

	recipe, err := h.db.GetRecipeByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	// Cooking the recipe as written when no serving count is given
	servingsCooked := req.ServingsCooked
	if servingsCooked == 0 {
		servingsCooked = float64(recipe.Servings)
	}

	pantry, err := h.db.ListPantryItems(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list pantry items")
	}

	result := engine.DeductRecipe(*recipe, pantry, servingsCooked, float64(recipe.Servings))

	if len(result.Changes) > 0 {
		if err := h.db.ApplyPantryChanges(c.Context(), userID, result.Changes); err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to apply pantry changes")
		}
	}

	resp := CookRecipeResponse{
		Deducted: result.Deducted,
		Skipped:  result.Skipped,
	}
	if resp.Deducted == nil {
		resp.Deducted = []engine.DeductedItem{}
	}
	if resp.Skipped == nil {
		resp.Skipped = []engine.SkippedIngredient{}
	}

	if len(result.Snapshot) > 0 {
		token, err := h.ledger.Create(c.Context(), userID, result.Snapshot)
		if err != nil {
			// The deduction stands; it just cannot be undone
			return Success(c, resp)
		}
		resp.UndoToken = token
		resp.UndoExpiresIn = int(undo.DefaultTTL.Seconds())
	}

	for _, d := range result.Deducted {
		eventType := models.EventDeducted
		if d.Removed {
			eventType = models.EventRemoved
		}
		qty := d.Deducted
		h.recorder.Record(models.PurchaseEvent{
			UserID:    userID,
			ItemName:  d.Name,
			EventType: eventType,
			Quantity:  &qty,
		})
	}

	return Success(c, resp)
}

// UndoCook reverses a recent deduction using its undo token. Items
// deleted by the deduction cannot be recreated; they count as missing.
func (h *Handler) UndoCook(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.UndoCookRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.UndoToken == "" {
		return Error(c, fiber.StatusBadRequest, "undo_token is required")
	}

	entries, err := h.ledger.Redeem(c.Context(), req.UndoToken, userID)
	if err != nil {
		if errors.Is(err, undo.ErrTokenNotFound) {
			return Error(c, fiber.StatusNotFound, "undo token not found or expired")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to redeem undo token")
	}

	resp := UndoCookResponse{}
	for _, entry := range entries {
		restored, err := h.db.RestorePantryQuantity(c.Context(), entry.PantryItemID, userID, entry.PriorQuantity)
		if err != nil {
			return Error(c, fiber.StatusInternalServerError, "failed to restore pantry quantities")
		}
		if restored {
			resp.RestoredCount++
		} else {
			resp.MissingCount++
		}
	}

	return Success(c, resp)
}
