package engine

import (
	"testing"
	"time"

	"github.com/calloway/larder/internal/models"
)

func TestDeduplicateItems(t *testing.T) {
	sources := []models.ScanSource{
		{Source: "photo", Items: []models.ScannedItem{
			{Name: "milk", Quantity: 1, Confidence: 0.7},
			{Name: "bread", Quantity: 1, Confidence: 0.8},
		}},
		{Source: "receipt", Items: []models.ScannedItem{
			{Name: "Whole Milk", Quantity: 1, Confidence: 0.9},
		}},
	}

	result := DeduplicateItems(sources)

	if result.TotalBeforeDedup != 3 {
		t.Errorf("TotalBeforeDedup = %d, want 3", result.TotalBeforeDedup)
	}
	if result.TotalAfterDedup != 2 {
		t.Errorf("TotalAfterDedup = %d, want 2", result.TotalAfterDedup)
	}
	if result.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", result.DuplicatesRemoved)
	}

	var milk *MergedItem
	for i := range result.Items {
		if Normalize(result.Items[i].Name) == "milk" {
			milk = &result.Items[i]
		}
	}
	if milk == nil {
		t.Fatal("merged milk entry not found")
	}
	if milk.Quantity != 2 {
		t.Errorf("merged quantity = %v, want 2", milk.Quantity)
	}
	// The higher-confidence reading keeps its display name
	if milk.Name != "Whole Milk" {
		t.Errorf("merged name = %q, want \"Whole Milk\"", milk.Name)
	}
	if milk.Confidence != 0.9 {
		t.Errorf("merged confidence = %v, want 0.9", milk.Confidence)
	}
	if len(milk.Sources) != 2 {
		t.Errorf("merged sources = %v, want [photo receipt]", milk.Sources)
	}
}

func TestDeduplicateItemsCountInvariant(t *testing.T) {
	sources := []models.ScanSource{
		{Source: "a", Items: []models.ScannedItem{
			{Name: "eggs", Quantity: 12, Confidence: 0.8},
			{Name: "butter", Quantity: 1, Confidence: 0.8},
			{Name: "egg", Quantity: 6, Confidence: 0.6},
		}},
	}

	result := DeduplicateItems(sources)

	if got := result.TotalAfterDedup + result.DuplicatesRemoved; got != result.TotalBeforeDedup {
		t.Errorf("after(%d) + removed(%d) = %d, want before(%d)",
			result.TotalAfterDedup, result.DuplicatesRemoved, got, result.TotalBeforeDedup)
	}
	if len(result.Items) != result.TotalAfterDedup {
		t.Errorf("len(Items) = %d, want %d", len(result.Items), result.TotalAfterDedup)
	}
}

func TestDeduplicateItemsSameSourceOnce(t *testing.T) {
	sources := []models.ScanSource{
		{Source: "photo", Items: []models.ScannedItem{
			{Name: "banana", Quantity: 3, Confidence: 0.7},
			{Name: "bananas", Quantity: 2, Confidence: 0.7},
		}},
	}

	result := DeduplicateItems(sources)

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if got := result.Items[0].Sources; len(got) != 1 || got[0] != "photo" {
		t.Errorf("Sources = %v, want [photo]", got)
	}
	if result.Items[0].Quantity != 5 {
		t.Errorf("Quantity = %v, want 5", result.Items[0].Quantity)
	}
}

func TestDeduplicateItemsKeepsExpiry(t *testing.T) {
	expiry := time.Now().AddDate(0, 0, 14)
	sources := []models.ScanSource{
		{Source: "a", Items: []models.ScannedItem{{Name: "yogurt", Quantity: 1, Confidence: 0.9}}},
		{Source: "b", Items: []models.ScannedItem{{Name: "yogurt", Quantity: 1, Confidence: 0.5, ExpiryDate: &expiry}}},
	}

	result := DeduplicateItems(sources)

	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if result.Items[0].ExpiryDate == nil {
		t.Error("ExpiryDate = nil, want the date from the second source")
	}
}
