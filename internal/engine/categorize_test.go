package engine

import (
	"testing"

	"github.com/calloway/larder/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		input string
		want  models.Category
	}{
		{"apple", models.CategoryProduce},
		{"chicken breast", models.CategoryMeatSeafood},
		{"whole milk", models.CategoryDairyEggs},
		{"sourdough bread", models.CategoryBakery},
		{"ice cream", models.CategoryFrozen},
		{"black beans", models.CategoryCanned},
		{"all-purpose flour", models.CategoryPantry},
		{"paper towels", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Categorize(tt.input)
			if got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategorizeTableOrder(t *testing.T) {
	// Keyword lists overlap; the first category in the table wins
	if got := Categorize("frozen chicken"); got != models.CategoryMeatSeafood {
		t.Errorf("Categorize(\"frozen chicken\") = %q, want %q", got, models.CategoryMeatSeafood)
	}
	if got := Categorize("tomato sauce"); got != models.CategoryProduce {
		t.Errorf("Categorize(\"tomato sauce\") = %q, want %q", got, models.CategoryProduce)
	}
}

func TestDefaultExpiryDays(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		category models.Category
		wantDays int
		wantOK   bool
	}{
		{"own category rule", "whole milk", models.CategoryDairyEggs, 7, true},
		{"meat default", "chicken thighs", models.CategoryMeatSeafood, 2, true},
		{"pantry staple", "jasmine rice", models.CategoryPantry, 730, true},
		{"cross-category fallback", "banana", models.CategoryOther, 5, true},
		{"no rule anywhere", "paper towels", models.CategoryOther, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := DefaultExpiryDays(tt.item, tt.category)
			if ok != tt.wantOK || days != tt.wantDays {
				t.Errorf("DefaultExpiryDays(%q, %q) = (%d, %v), want (%d, %v)",
					tt.item, tt.category, days, ok, tt.wantDays, tt.wantOK)
			}
		})
	}
}
