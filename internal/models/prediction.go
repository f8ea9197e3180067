package models

import (
	"time"
)

// Urgency buckets a run-out forecast by how soon action is needed
type Urgency string

const (
	UrgencyNow      Urgency = "now"
	UrgencySoon     Urgency = "soon"
	UrgencyUpcoming Urgency = "upcoming"
)

// ReorderPrediction is a run-out forecast for a single staple, derived
// from its purchase history
type ReorderPrediction struct {
	ItemName         string    `json:"item_name"`
	AverageCycleDays float64   `json:"average_cycle_days"`
	LastPurchased    time.Time `json:"last_purchased"`
	PredictedRunOut  time.Time `json:"predicted_run_out"`
	DaysUntilRunOut  int       `json:"days_until_run_out"`
	Urgency          Urgency   `json:"urgency"`
	Confidence       float64   `json:"confidence"`
	PurchaseCount    int       `json:"purchase_count"`
}
