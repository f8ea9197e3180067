package services

import (
	"math"
	"testing"

	"github.com/calloway/larder/internal/models"
)

func TestIngredientParserParseLineFormats(t *testing.T) {
	p := NewIngredientParser()

	tests := []struct {
		name     string
		line     string
		wantName string
		wantQty  float64
		hasQty   bool
		wantUnit string
	}{
		{"checkbox line", "- [ ] 2 cups all-purpose flour", "all-purpose flour", 2, true, "cup"},
		{"checked checkbox", "- [x] 1 cup sugar", "sugar", 1, true, "cup"},
		{"bullet line", "* 3 eggs", "eggs", 3, true, ""},
		{"mixed fraction", "1 1/2 cups milk", "milk", 1.5, true, "cup"},
		{"unicode fraction", "½ tsp salt", "salt", 0.5, true, "teaspoon"},
		{"whole plus unicode", "1 ½ cups water", "water", 1.5, true, "cup"},
		{"quantity range", "2 - 3 cloves garlic", "garlic", 2.5, true, "clove"},
		{"parenthetical stripped", "1 lb chicken breast (boneless), trimmed", "chicken breast", 1, true, "pound"},
		{"of prefix stripped", "2 cups of sugar", "sugar", 2, true, "cup"},
		{"no quantity", "Salt to taste", "Salt to taste", 0, false, ""},
		{"abbreviated unit", "2 tbsp olive oil", "olive oil", 2, true, "tablespoon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ings := p.Parse(tt.line)
			if len(ings) != 1 {
				t.Fatalf("Parse(%q) returned %d ingredients, want 1", tt.line, len(ings))
			}
			ing := ings[0]

			if ing.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ing.Name, tt.wantName)
			}
			if tt.hasQty {
				if ing.Quantity == nil {
					t.Fatalf("Quantity = nil, want %v", tt.wantQty)
				}
				if math.Abs(*ing.Quantity-tt.wantQty) > 0.001 {
					t.Errorf("Quantity = %v, want %v", *ing.Quantity, tt.wantQty)
				}
			} else if ing.Quantity != nil {
				t.Errorf("Quantity = %v, want nil", *ing.Quantity)
			}
			if ing.Unit != tt.wantUnit {
				t.Errorf("Unit = %q, want %q", ing.Unit, tt.wantUnit)
			}
		})
	}
}

func TestIngredientParserParseBlock(t *testing.T) {
	p := NewIngredientParser()

	content := `- [ ] 2 cups flour

- [ ] 1 cup milk
* 3 eggs
plain line without marker`

	ings := p.Parse(content)
	if len(ings) != 4 {
		t.Fatalf("len(ings) = %d, want 4", len(ings))
	}
	if ings[3].Name != "plain line without marker" {
		t.Errorf("ings[3].Name = %q, want the plain line kept as-is", ings[3].Name)
	}
}

func TestIngredientParserAssignsCategories(t *testing.T) {
	p := NewIngredientParser()

	tests := []struct {
		line string
		want models.Category
	}{
		{"2 cups flour", models.CategoryPantry},
		{"1 cup milk", models.CategoryDairyEggs},
		{"1 lb chicken thighs", models.CategoryMeatSeafood},
		{"3 bananas", models.CategoryProduce},
	}

	for _, tt := range tests {
		ings := p.Parse(tt.line)
		if len(ings) != 1 {
			t.Fatalf("Parse(%q) returned %d ingredients, want 1", tt.line, len(ings))
		}
		if ings[0].Category != tt.want {
			t.Errorf("Parse(%q) category = %q, want %q", tt.line, ings[0].Category, tt.want)
		}
	}
}
