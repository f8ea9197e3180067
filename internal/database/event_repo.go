package database

import (
	"context"

	"github.com/calloway/larder/internal/models"
)

// AppendPurchaseEvent writes one entry to the append-only event log
func (db *DB) AppendPurchaseEvent(ctx context.Context, ev *models.PurchaseEvent) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO purchase_events (user_id, item_name, event_type, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)
	`, ev.UserID, ev.ItemName, ev.EventType, ev.Quantity, ev.Unit)
	return err
}

// ListPurchaseEvents returns a user's full event history, oldest first
func (db *DB) ListPurchaseEvents(ctx context.Context, userID int) ([]models.PurchaseEvent, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, item_name, event_type, quantity, unit, created_at
		FROM purchase_events
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.PurchaseEvent
	for rows.Next() {
		var ev models.PurchaseEvent
		err := rows.Scan(&ev.ID, &ev.UserID, &ev.ItemName, &ev.EventType, &ev.Quantity, &ev.Unit, &ev.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
