package engine

import (
	"sort"

	"github.com/calloway/larder/internal/models"
)

// ConsolidateGroceries merges ingredient demand across recipes,
// subtracts on-hand pantry stock, and orders the result the way a
// shopper walks the store.
//
// Demand is aggregated by normalized name, so "chopped onions" in one
// recipe and "onion" in another land on the same line. For every line,
// needToBuy = max(0, totalQuantity - pantryQuantity) and is never
// negative. The sort is stable: within a category, lines keep the order
// the first contributing recipe introduced them.
func ConsolidateGroceries(recipes []models.Recipe, pantry []models.PantryItem) []models.ConsolidatedGroceryItem {
	type entry struct {
		item  models.ConsolidatedGroceryItem
		order int
	}

	byKey := make(map[string]*entry)
	var keys []string

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			key := Normalize(ing.Name)
			if key == "" {
				continue
			}

			qty := 0.0
			if ing.Quantity != nil {
				qty = *ing.Quantity
			}

			e, ok := byKey[key]
			if !ok {
				category := ing.Category
				if !category.IsValid() || category == models.CategoryOther {
					category = Categorize(ing.Name)
				}
				e = &entry{
					item: models.ConsolidatedGroceryItem{
						Name:     ing.Name,
						Unit:     ing.Unit,
						Category: category,
					},
					order: len(keys),
				}
				byKey[key] = e
				keys = append(keys, key)
			}

			e.item.TotalQuantity += qty
			e.item.FromRecipes = append(e.item.FromRecipes, models.RecipeRef{
				RecipeID:    r.ID,
				RecipeTitle: r.Title,
				Quantity:    qty,
			})
		}
	}

	// Pantry stock keyed by the same normalization; duplicate keys sum
	pantryQty := make(map[string]float64)
	for _, p := range pantry {
		key := Normalize(p.Name)
		if key == "" {
			continue
		}
		if _, ok := pantryQty[key]; !ok {
			pantryQty[key] = 0
		}
		if p.Quantity != nil {
			pantryQty[key] += *p.Quantity
		}
	}

	items := make([]models.ConsolidatedGroceryItem, 0, len(keys))
	for _, key := range keys {
		e := byKey[key]
		if stock, ok := pantryQty[key]; ok {
			e.item.InPantry = true
			e.item.PantryQuantity = stock
		}
		need := e.item.TotalQuantity - e.item.PantryQuantity
		if need < 0 {
			need = 0
		}
		e.item.NeedToBuy = need
		items = append(items, e.item)
	}

	rank := make(map[models.Category]int, len(models.CategoryOrder))
	for i, c := range models.CategoryOrder {
		rank[c] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank[items[i].Category] < rank[items[j].Category]
	})

	return items
}
