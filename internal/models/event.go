package models

import (
	"time"
)

// EventType classifies a purchase event
type EventType string

const (
	EventAdded    EventType = "added"
	EventDeducted EventType = "deducted"
	EventRemoved  EventType = "removed"
)

// PurchaseEvent is one entry in the append-only item history log.
// The engine never updates or deletes these.
type PurchaseEvent struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ItemName  string    `json:"item_name"`
	EventType EventType `json:"event_type"`
	Quantity  *float64  `json:"quantity,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
