package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/models"
)

// GetPredictions forecasts which staples run out within the next week,
// based on the user's purchase history
func (h *Handler) GetPredictions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	events, err := h.db.ListPurchaseEvents(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to load purchase history")
	}

	predictions := engine.PredictReorders(events, time.Now())
	if predictions == nil {
		predictions = []models.ReorderPrediction{}
	}

	return Success(c, predictions)
}
