package engine

import (
	"github.com/calloway/larder/internal/models"
)

// MergedItem is one entry in a deduplicated item list, carrying the
// labels of every source that reported it
type MergedItem struct {
	models.ScannedItem
	Sources []string `json:"sources"`

	// normalized key of the current display name
	key string
}

// DedupResult is the outcome of merging multiple scan sources
type DedupResult struct {
	Items             []MergedItem `json:"items"`
	TotalBeforeDedup  int          `json:"total_before_dedup"`
	TotalAfterDedup   int          `json:"total_after_dedup"`
	DuplicatesRemoved int          `json:"duplicates_removed"`
}

// DeduplicateItems merges item lists from independent sources (several
// photos of the same shelf, a voice note plus a receipt) into one list.
// Sources are walked in order; each incoming item is compared against
// the accumulated entries by exact normalized key, then fuzzily against
// the entry's current display name. First match wins.
//
// On a merge the quantities are summed and the higher-confidence
// reading keeps its display name.
func DeduplicateItems(sources []models.ScanSource) DedupResult {
	var merged []MergedItem
	total := 0

	for _, src := range sources {
		total += len(src.Items)
		for _, item := range src.Items {
			key := Normalize(item.Name)

			found := -1
			for i := range merged {
				if merged[i].key == key || Match(item.Name, merged[i].Name) {
					found = i
					break
				}
			}

			if found < 0 {
				merged = append(merged, MergedItem{
					ScannedItem: item,
					Sources:     []string{src.Source},
					key:         key,
				})
				continue
			}

			m := &merged[found]
			m.Quantity += item.Quantity
			if item.Confidence > m.Confidence {
				// Trust the clearer reading for display
				m.Name = item.Name
				m.Confidence = item.Confidence
				m.key = key
			}
			if item.ExpiryDate != nil && m.ExpiryDate == nil {
				m.ExpiryDate = item.ExpiryDate
			}
			if !containsString(m.Sources, src.Source) {
				m.Sources = append(m.Sources, src.Source)
			}
		}
	}

	return DedupResult{
		Items:             merged,
		TotalBeforeDedup:  total,
		TotalAfterDedup:   len(merged),
		DuplicatesRemoved: total - len(merged),
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
