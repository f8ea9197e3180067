package engine

import (
	"math"
	"testing"
	"time"

	"github.com/calloway/larder/internal/models"
)

func purchases(name string, base time.Time, days ...int) []models.PurchaseEvent {
	events := make([]models.PurchaseEvent, 0, len(days))
	for _, d := range days {
		events = append(events, models.PurchaseEvent{
			UserID:    1,
			ItemName:  name,
			EventType: models.EventAdded,
			CreatedAt: base.AddDate(0, 0, d),
		})
	}
	return events
}

func TestPredictReordersCycle(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := purchases("milk", base, 0, 7, 15, 21)
	now := base.AddDate(0, 0, 22)

	preds := PredictReorders(events, now)

	if len(preds) != 1 {
		t.Fatalf("len(preds) = %d, want 1", len(preds))
	}
	p := preds[0]

	if p.ItemName != "milk" {
		t.Errorf("ItemName = %q, want \"milk\"", p.ItemName)
	}
	// Intervals 7, 8, 6 weighted toward the recent gap land near 6.86
	if math.Abs(p.AverageCycleDays-6.86) > 0.05 {
		t.Errorf("AverageCycleDays = %v, want ~6.86", p.AverageCycleDays)
	}
	if p.DaysUntilRunOut != 6 {
		t.Errorf("DaysUntilRunOut = %d, want 6", p.DaysUntilRunOut)
	}
	if p.Urgency != models.UrgencyUpcoming {
		t.Errorf("Urgency = %q, want %q", p.Urgency, models.UrgencyUpcoming)
	}
	if p.Confidence < 0.8 || p.Confidence > 0.9 {
		t.Errorf("Confidence = %v, want within (0.8, 0.9)", p.Confidence)
	}
	if p.PurchaseCount != 4 {
		t.Errorf("PurchaseCount = %d, want 4", p.PurchaseCount)
	}
}

func TestPredictReordersUrgency(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := purchases("coffee", base, 0, 7, 14)
	now := base.AddDate(0, 0, 25)

	preds := PredictReorders(events, now)

	if len(preds) != 1 {
		t.Fatalf("len(preds) = %d, want 1", len(preds))
	}
	if preds[0].Urgency != models.UrgencyNow {
		t.Errorf("Urgency = %q, want %q", preds[0].Urgency, models.UrgencyNow)
	}
	if preds[0].DaysUntilRunOut >= 0 {
		t.Errorf("DaysUntilRunOut = %d, want negative", preds[0].DaysUntilRunOut)
	}
	// Perfectly regular intervals hit the confidence ceiling
	if preds[0].Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", preds[0].Confidence)
	}
}

func TestPredictReordersExclusions(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("too few purchases", func(t *testing.T) {
		events := purchases("salt", base, 0, 7)
		if preds := PredictReorders(events, base.AddDate(0, 0, 14)); len(preds) != 0 {
			t.Errorf("len(preds) = %d, want 0", len(preds))
		}
	})

	t.Run("only added events count", func(t *testing.T) {
		events := purchases("flour", base, 0, 7, 14, 21)
		for i := range events {
			events[i].EventType = models.EventDeducted
		}
		if preds := PredictReorders(events, base.AddDate(0, 0, 22)); len(preds) != 0 {
			t.Errorf("len(preds) = %d, want 0", len(preds))
		}
	})

	t.Run("erratic intervals dropped", func(t *testing.T) {
		events := purchases("caviar", base, 0, 200, 201)
		if preds := PredictReorders(events, base.AddDate(0, 0, 201)); len(preds) != 0 {
			t.Errorf("len(preds) = %d, want 0", len(preds))
		}
	})

	t.Run("cycle over a year dropped", func(t *testing.T) {
		events := purchases("turkey", base, 0, 400, 800)
		if preds := PredictReorders(events, base.AddDate(0, 0, 800)); len(preds) != 0 {
			t.Errorf("len(preds) = %d, want 0", len(preds))
		}
	})

	t.Run("run-out beyond horizon dropped", func(t *testing.T) {
		events := purchases("rice", base, 0, 30, 60)
		if preds := PredictReorders(events, base.AddDate(0, 0, 60)); len(preds) != 0 {
			t.Errorf("len(preds) = %d, want 0", len(preds))
		}
	})
}

func TestPredictReordersSortOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base.AddDate(0, 0, 22)

	var events []models.PurchaseEvent
	// milk runs out in ~6 days (upcoming)
	events = append(events, purchases("milk", base, 0, 7, 15, 21)...)
	// bread ran out already (now)
	events = append(events, purchases("bread", base, 0, 5, 10, 15)...)

	preds := PredictReorders(events, now)

	if len(preds) != 2 {
		t.Fatalf("len(preds) = %d, want 2", len(preds))
	}
	if preds[0].ItemName != "bread" || preds[1].ItemName != "milk" {
		t.Errorf("order = [%q, %q], want [bread, milk]", preds[0].ItemName, preds[1].ItemName)
	}
}

func TestPredictReordersGroupsByLowercasedName(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := append(purchases("Milk", base, 0, 7), purchases("milk", base, 15, 21)...)

	preds := PredictReorders(events, base.AddDate(0, 0, 22))

	if len(preds) != 1 {
		t.Fatalf("len(preds) = %d, want 1", len(preds))
	}
	if preds[0].PurchaseCount != 4 {
		t.Errorf("PurchaseCount = %d, want 4", preds[0].PurchaseCount)
	}
}
