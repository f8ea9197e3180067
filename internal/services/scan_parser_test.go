package services

import (
	"testing"

	"github.com/calloway/larder/internal/models"
)

func TestScanParserReceipt(t *testing.T) {
	p := NewScanParser()

	ocrText := `FOOD MART
WHOLE MILK 3.99
BANANAS 0.99 F
012345678901 CEREAL 4.99
2.96 lb @ $0.99 / lb
----------------
SUBTOTAL 9.97
TAX 0.80
TOTAL 10.77
THANK YOU`

	items := p.Parse(ocrText)

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	want := []string{"FOOD MART", "WHOLE MILK", "BANANAS", "CEREAL"}
	if len(items) != len(want) {
		t.Fatalf("parsed %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}

	for _, item := range items {
		if item.Quantity != 1 {
			t.Errorf("%q quantity = %v, want 1", item.Name, item.Quantity)
		}
		if item.Confidence != 0.7 {
			t.Errorf("%q confidence = %v, want 0.7", item.Name, item.Confidence)
		}
	}
}

func TestScanParserExcludesBookkeepingLines(t *testing.T) {
	p := NewScanParser()

	excluded := []string{
		"SUBTOTAL 9.97",
		"TAX 0.80",
		"GRAND TOTAL 10.77",
		"CASH 20.00",
		"CHANGE 9.23",
		"THANK YOU FOR SHOPPING",
		"01/15/2026",
		"12:45 PM",
		"================",
	}

	for _, line := range excluded {
		if items := p.Parse(line); len(items) != 0 {
			t.Errorf("Parse(%q) = %d items, want 0", line, len(items))
		}
	}
}

func TestScanParserCategorizes(t *testing.T) {
	p := NewScanParser()

	items := p.Parse("WHOLE MILK 3.99\nBANANAS 0.99")
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Category != models.CategoryDairyEggs {
		t.Errorf("milk category = %q, want %q", items[0].Category, models.CategoryDairyEggs)
	}
	if items[1].Category != models.CategoryProduce {
		t.Errorf("bananas category = %q, want %q", items[1].Category, models.CategoryProduce)
	}
}
