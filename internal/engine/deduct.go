package engine

import (
	"github.com/calloway/larder/internal/models"
)

// SnapshotEntry records a pantry item's quantity before a deduction
// touched it, so the deduction can be reversed.
type SnapshotEntry struct {
	PantryItemID  int      `json:"pantry_item_id"`
	PriorQuantity *float64 `json:"prior_quantity"`
}

// DeductedItem reports one pantry item consumed by a cook
type DeductedItem struct {
	PantryItemID int     `json:"pantry_item_id"`
	Name         string  `json:"name"`
	Ingredient   string  `json:"ingredient"`
	Deducted     float64 `json:"deducted"`
	Remaining    float64 `json:"remaining"`
	Removed      bool    `json:"removed"`
}

// SkippedIngredient reports an ingredient that could not be deducted
type SkippedIngredient struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// DeductionResult is the full outcome of applying a cooked recipe to
// pantry stock. Changes is what the caller persists; Snapshot is what
// the undo ledger keeps.
type DeductionResult struct {
	Deducted []DeductedItem        `json:"deducted"`
	Skipped  []SkippedIngredient   `json:"skipped"`
	Changes  []models.PantryChange `json:"-"`
	Snapshot []SnapshotEntry       `json:"-"`
}

// DeductRecipe applies a recipe's ingredient demand, scaled by the
// serving ratio, against pantry stock. It mutates nothing: the caller
// applies the returned changes and stores the snapshot.
//
// Matching is exact-normalized first, then a fuzzy scan in pantry
// iteration order. Quantities never go negative; an item whose
// quantity reaches zero is marked for deletion. "No match" is a
// skipped result, not an error.
func DeductRecipe(recipe models.Recipe, pantry []models.PantryItem, servingsCooked, servingsOriginal float64) DeductionResult {
	var result DeductionResult

	scale := 1.0
	if servingsOriginal > 0 && servingsCooked > 0 {
		scale = servingsCooked / servingsOriginal
	}

	// Exact lookup table; first pantry item per key wins
	byKey := make(map[string]int, len(pantry))
	for i, p := range pantry {
		key := Normalize(p.Name)
		if _, ok := byKey[key]; !ok {
			byKey[key] = i
		}
	}

	// Quantities already consumed by earlier ingredients in this call
	working := make(map[int]float64, len(pantry))
	snapshotted := make(map[int]bool, len(pantry))

	for _, ing := range recipe.Ingredients {
		if ing.Quantity == nil {
			result.Skipped = append(result.Skipped, SkippedIngredient{
				Name: ing.Name, Reason: "no quantity on ingredient",
			})
			continue
		}
		scaledQty := *ing.Quantity * scale
		if scaledQty <= 0 {
			result.Skipped = append(result.Skipped, SkippedIngredient{
				Name: ing.Name, Reason: "scaled quantity is zero",
			})
			continue
		}

		idx, ok := byKey[Normalize(ing.Name)]
		if !ok {
			idx = -1
			for i, p := range pantry {
				if Match(ing.Name, p.Name) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			result.Skipped = append(result.Skipped, SkippedIngredient{
				Name: ing.Name, Reason: "not found in pantry",
			})
			continue
		}

		item := pantry[idx]
		if item.Quantity == nil {
			// Unquantified stock cannot be deducted numerically
			result.Skipped = append(result.Skipped, SkippedIngredient{
				Name: ing.Name, Reason: "pantry quantity unknown",
			})
			continue
		}

		current, seen := working[item.ID]
		if !seen {
			current = *item.Quantity
		}
		if !snapshotted[item.ID] {
			prior := *item.Quantity
			result.Snapshot = append(result.Snapshot, SnapshotEntry{
				PantryItemID:  item.ID,
				PriorQuantity: &prior,
			})
			snapshotted[item.ID] = true
		}

		newQty := current - scaledQty
		if newQty < 0 {
			newQty = 0
		}
		working[item.ID] = newQty

		removed := newQty <= 0
		result.Deducted = append(result.Deducted, DeductedItem{
			PantryItemID: item.ID,
			Name:         item.Name,
			Ingredient:   ing.Name,
			Deducted:     current - newQty,
			Remaining:    newQty,
			Removed:      removed,
		})
		result.Changes = append(result.Changes, models.PantryChange{
			ItemID:      item.ID,
			NewQuantity: newQty,
			Delete:      removed,
		})
	}

	return result
}
