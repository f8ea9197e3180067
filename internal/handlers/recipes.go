package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/calloway/larder/internal/database"
	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/models"
)

// GetRecipes returns the user's recipes
func (h *Handler) GetRecipes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	recipes, err := h.db.ListRecipes(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list recipes")
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	return Success(c, recipes)
}

// GetRecipe returns a single recipe
func (h *Handler) GetRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	recipe, err := h.db.GetRecipeByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get recipe")
	}

	return Success(c, recipe)
}

// CreateRecipe creates a recipe from structured ingredients
func (h *Handler) CreateRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return Error(c, fiber.StatusBadRequest, "title is required")
	}
	if req.Servings <= 0 {
		return Error(c, fiber.StatusBadRequest, "servings must be positive")
	}
	for i := range req.Ingredients {
		if req.Ingredients[i].Name == "" {
			return Error(c, fiber.StatusBadRequest, "ingredient name is required")
		}
		if !req.Ingredients[i].Category.IsValid() {
			req.Ingredients[i].Category = engine.Categorize(req.Ingredients[i].Name)
		}
	}

	recipe, err := h.db.CreateRecipe(c.Context(), userID, &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: recipe})
}

// ImportRecipe creates a recipe from pasted ingredient text — markdown
// checkbox lists, bullet lists, or plain lines
func (h *Handler) ImportRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.ImportRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return Error(c, fiber.StatusBadRequest, "title is required")
	}
	if req.Servings <= 0 {
		req.Servings = 1
	}

	ingredients := h.ingredients.Parse(req.Ingredients)
	if len(ingredients) == 0 {
		return Error(c, fiber.StatusBadRequest, "no ingredients could be parsed")
	}

	recipe, err := h.db.CreateRecipe(c.Context(), userID, &models.CreateRecipeRequest{
		Title:       req.Title,
		Servings:    req.Servings,
		Ingredients: ingredients,
	})
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create recipe")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: recipe})
}

// UpdateRecipe updates a recipe
func (h *Handler) UpdateRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	var req models.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Servings != nil && *req.Servings <= 0 {
		return Error(c, fiber.StatusBadRequest, "servings must be positive")
	}
	for i := range req.Ingredients {
		if req.Ingredients[i].Name == "" {
			return Error(c, fiber.StatusBadRequest, "ingredient name is required")
		}
		if !req.Ingredients[i].Category.IsValid() {
			req.Ingredients[i].Category = engine.Categorize(req.Ingredients[i].Name)
		}
	}

	recipe, err := h.db.UpdateRecipe(c.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update recipe")
	}

	return Success(c, recipe)
}

// DeleteRecipe removes a recipe
func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	if err := h.db.DeleteRecipe(c.Context(), id, userID); err != nil {
		if errors.Is(err, database.ErrRecipeNotFound) {
			return Error(c, fiber.StatusNotFound, "recipe not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}

	return Success(c, fiber.Map{"deleted": true})
}

// GetRecipeMatches scores the user's recipes against current pantry
// stock, answering "what can I make tonight"
func (h *Handler) GetRecipeMatches(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	minMatch := c.QueryInt("min_match", 30)
	if minMatch < 0 || minMatch > 100 {
		return Error(c, fiber.StatusBadRequest, "min_match must be between 0 and 100")
	}

	recipes, err := h.db.ListRecipes(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list recipes")
	}
	pantry, err := h.db.ListPantryItems(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list pantry items")
	}

	matches := engine.MatchRecipesToPantry(recipes, pantry, minMatch)
	if matches == nil {
		matches = []engine.RecipeMatch{}
	}

	return Success(c, matches)
}
