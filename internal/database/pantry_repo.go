package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/calloway/larder/internal/models"
)

var (
	ErrPantryItemNotFound = errors.New("pantry item not found")
)

// ListPantryItems returns all pantry items for a user in insertion order
func (db *DB) ListPantryItems(ctx context.Context, userID int) ([]models.PantryItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, name, quantity, unit, category, expiry_date, created_at, updated_at
		FROM pantry_items
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		var item models.PantryItem
		err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
			&item.Category, &item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetPantryItemByID returns a single pantry item owned by the user
func (db *DB) GetPantryItemByID(ctx context.Context, id, userID int) (*models.PantryItem, error) {
	item := &models.PantryItem{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, user_id, name, quantity, unit, category, expiry_date, created_at, updated_at
		FROM pantry_items
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
		&item.Category, &item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPantryItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// CreatePantryItem inserts a new pantry item
func (db *DB) CreatePantryItem(ctx context.Context, userID int, req *models.CreatePantryItemRequest) (*models.PantryItem, error) {
	category := req.Category
	if !category.IsValid() {
		category = models.CategoryOther
	}

	item := &models.PantryItem{}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO pantry_items (user_id, name, quantity, unit, category, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, quantity, unit, category, expiry_date, created_at, updated_at
	`, userID, req.Name, req.Quantity, req.Unit, category, req.ExpiryDate).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
		&item.Category, &item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// UpdatePantryItem updates fields of a pantry item
func (db *DB) UpdatePantryItem(ctx context.Context, id, userID int, req *models.UpdatePantryItemRequest) (*models.PantryItem, error) {
	item := &models.PantryItem{}
	err := db.Pool.QueryRow(ctx, `
		UPDATE pantry_items
		SET name = COALESCE($3, name),
			quantity = COALESCE($4, quantity),
			unit = COALESCE($5, unit),
			category = COALESCE($6, category),
			expiry_date = COALESCE($7, expiry_date),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, quantity, unit, category, expiry_date, created_at, updated_at
	`, id, userID, req.Name, req.Quantity, req.Unit, req.Category, req.ExpiryDate).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
		&item.Category, &item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPantryItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// DeletePantryItem removes a pantry item
func (db *DB) DeletePantryItem(ctx context.Context, id, userID int) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM pantry_items WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPantryItemNotFound
	}

	return nil
}

// AddToPantryQuantity adds to an item's quantity, treating an unset
// quantity as zero. Used by the bulk-add merge path.
func (db *DB) AddToPantryQuantity(ctx context.Context, id, userID int, delta float64) (*models.PantryItem, error) {
	item := &models.PantryItem{}
	err := db.Pool.QueryRow(ctx, `
		UPDATE pantry_items
		SET quantity = COALESCE(quantity, 0) + $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, quantity, unit, category, expiry_date, created_at, updated_at
	`, id, userID, delta).Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
		&item.Category, &item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPantryItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// ApplyPantryChanges persists the deltas from a deduction: quantity
// updates and zero-quantity deletes. Writes are sequential, not wrapped
// in a transaction; a crash mid-way leaves a partial deduction whose
// undo snapshot covers only the rows written so far. Callers needing
// strict atomicity must wrap this at the persistence boundary.
func (db *DB) ApplyPantryChanges(ctx context.Context, userID int, changes []models.PantryChange) error {
	for _, ch := range changes {
		if ch.Delete {
			_, err := db.Pool.Exec(ctx, `
				DELETE FROM pantry_items WHERE id = $1 AND user_id = $2
			`, ch.ItemID, userID)
			if err != nil {
				return err
			}
			continue
		}
		_, err := db.Pool.Exec(ctx, `
			UPDATE pantry_items SET quantity = $3, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
		`, ch.ItemID, userID, ch.NewQuantity)
		if err != nil {
			return err
		}
	}

	return nil
}

// RestorePantryQuantity sets an item's quantity back to a prior value.
// Returns false when the item no longer exists; items deleted during a
// deduction cannot be recreated by undo.
func (db *DB) RestorePantryQuantity(ctx context.Context, id, userID int, quantity *float64) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE pantry_items SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID, quantity)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// GetExpiringPantryItems returns items expiring within the given days
func (db *DB) GetExpiringPantryItems(ctx context.Context, userID, days int) ([]models.PantryItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, name, quantity, unit, category, expiry_date, created_at, updated_at
		FROM pantry_items
		WHERE user_id = $1
			AND expiry_date IS NOT NULL
			AND expiry_date <= CURRENT_DATE + make_interval(days => $2)
		ORDER BY expiry_date
	`, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		var item models.PantryItem
		err := rows.Scan(
			&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
			&item.Category, &item.ExpiryDate, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
