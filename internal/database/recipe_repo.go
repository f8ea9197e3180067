package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/calloway/larder/internal/models"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// ListRecipes returns all recipes for a user with their ingredients
func (db *DB) ListRecipes(ctx context.Context, userID int) ([]models.Recipe, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, title, servings, instructions, created_at, updated_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var r models.Recipe
		err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Servings, &r.Instructions, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		ingredients, err := db.listIngredients(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Ingredients = ingredients
	}

	return recipes, nil
}

// GetRecipesByIDs returns the given recipes, skipping ids that do not
// exist or belong to another user
func (db *DB) GetRecipesByIDs(ctx context.Context, userID int, ids []int) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, title, servings, instructions, created_at, updated_at
		FROM recipes
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY id
	`, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var r models.Recipe
		err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Servings, &r.Instructions, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		ingredients, err := db.listIngredients(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Ingredients = ingredients
	}

	return recipes, nil
}

// GetRecipeByID returns a single recipe owned by the user
func (db *DB) GetRecipeByID(ctx context.Context, id, userID int) (*models.Recipe, error) {
	r := &models.Recipe{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, title, servings, instructions, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&r.ID, &r.UserID, &r.Title, &r.Servings, &r.Instructions, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	ingredients, err := db.listIngredients(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	r.Ingredients = ingredients

	return r, nil
}

// CreateRecipe inserts a recipe with its ingredient lines
func (db *DB) CreateRecipe(ctx context.Context, userID int, req *models.CreateRecipeRequest) (*models.Recipe, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	r := &models.Recipe{}
	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (user_id, title, servings, instructions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, servings, instructions, created_at, updated_at
	`, userID, req.Title, req.Servings, req.Instructions).Scan(
		&r.ID, &r.UserID, &r.Title, &r.Servings, &r.Instructions, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for i, ing := range req.Ingredients {
		category := ing.Category
		if !category.IsValid() {
			category = models.CategoryOther
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, name, quantity, unit, category, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.ID, ing.Name, ing.Quantity, ing.Unit, category, i)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.Ingredients = req.Ingredients
	return r, nil
}

// UpdateRecipe updates a recipe; a non-nil ingredient list replaces the
// stored lines wholesale
func (db *DB) UpdateRecipe(ctx context.Context, id, userID int, req *models.UpdateRecipeRequest) (*models.Recipe, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	r := &models.Recipe{}
	err = tx.QueryRow(ctx, `
		UPDATE recipes
		SET title = COALESCE($3, title),
			servings = COALESCE($4, servings),
			instructions = COALESCE($5, instructions),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, servings, instructions, created_at, updated_at
	`, id, userID, req.Title, req.Servings, req.Instructions).Scan(
		&r.ID, &r.UserID, &r.Title, &r.Servings, &r.Instructions, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if req.Ingredients != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, r.ID); err != nil {
			return nil, err
		}
		for i, ing := range req.Ingredients {
			category := ing.Category
			if !category.IsValid() {
				category = models.CategoryOther
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO recipe_ingredients (recipe_id, name, quantity, unit, category, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, r.ID, ing.Name, ing.Quantity, ing.Unit, category, i)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	ingredients, err := db.listIngredients(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	r.Ingredients = ingredients

	return r, nil
}

// DeleteRecipe removes a recipe and its ingredient lines
func (db *DB) DeleteRecipe(ctx context.Context, id, userID int) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM recipes WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

func (db *DB) listIngredients(ctx context.Context, recipeID int) ([]models.RecipeIngredient, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT name, quantity, unit, category
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.RecipeIngredient
	for rows.Next() {
		var ing models.RecipeIngredient
		if err := rows.Scan(&ing.Name, &ing.Quantity, &ing.Unit, &ing.Category); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}
