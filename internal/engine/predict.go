package engine

import (
	"math"
	"sort"
	"time"

	"github.com/calloway/larder/internal/models"
)

const (
	// minPurchases is the minimum number of purchase timestamps an item
	// needs before its cycle can be estimated
	minPurchases = 3

	// cycleDecay is the per-step weight decay of the exponentially
	// weighted average, counted back from the most recent interval
	cycleDecay = 0.7

	// maxCycleDays discards items bought less than yearly
	maxCycleDays = 365

	// maxVariation discards items whose purchase intervals are too
	// erratic to forecast (coefficient of variation)
	maxVariation = 1.5

	// forecastHorizonDays limits output to near-term run-outs
	forecastHorizonDays = 7

	minConfidence = 0.3
	maxConfidence = 0.95
)

var urgencyRank = map[models.Urgency]int{
	models.UrgencyNow:      0,
	models.UrgencySoon:     1,
	models.UrgencyUpcoming: 2,
}

// PredictReorders turns per-item purchase history into run-out
// forecasts. Only "added" events count as purchases; history is grouped
// by lowercased, trimmed item name.
//
// The cycle estimate is an exponentially weighted average of the gaps
// between consecutive purchases, weighting recent gaps highest, and the
// confidence score shrinks with the variability of those gaps, clamped
// to [0.3, 0.95]. Items are dropped when they have too little history,
// an unreasonable cycle, erratic intervals, or a run-out beyond the
// forecast horizon.
func PredictReorders(events []models.PurchaseEvent, now time.Time) []models.ReorderPrediction {
	type history struct {
		name  string
		times []time.Time
	}

	byKey := make(map[string]*history)
	var keys []string
	for _, ev := range events {
		if ev.EventType != models.EventAdded {
			continue
		}
		key := HistoryKey(ev.ItemName)
		if key == "" {
			continue
		}
		h, ok := byKey[key]
		if !ok {
			h = &history{name: ev.ItemName}
			byKey[key] = h
			keys = append(keys, key)
		}
		h.times = append(h.times, ev.CreatedAt)
	}

	var predictions []models.ReorderPrediction
	for _, key := range keys {
		h := byKey[key]
		if len(h.times) < minPurchases {
			continue
		}

		sort.Slice(h.times, func(i, j int) bool { return h.times[i].Before(h.times[j]) })

		intervals := make([]float64, 0, len(h.times)-1)
		for i := 1; i < len(h.times); i++ {
			intervals = append(intervals, h.times[i].Sub(h.times[i-1]).Hours()/24)
		}

		cycle := weightedCycle(intervals)
		if cycle <= 0 || cycle > maxCycleDays {
			continue
		}

		cv := math.Sqrt(sampleVariance(intervals, cycle)) / cycle
		if cv > maxVariation {
			continue
		}
		confidence := clamp(1-cv, minConfidence, maxConfidence)

		last := h.times[len(h.times)-1]
		runOut := last.Add(time.Duration(cycle * 24 * float64(time.Hour)))
		daysUntil := int(math.Round(runOut.Sub(now).Hours() / 24))
		if daysUntil > forecastHorizonDays {
			continue
		}

		urgency := models.UrgencyUpcoming
		switch {
		case daysUntil <= 0:
			urgency = models.UrgencyNow
		case daysUntil <= 3:
			urgency = models.UrgencySoon
		}

		predictions = append(predictions, models.ReorderPrediction{
			ItemName:         h.name,
			AverageCycleDays: cycle,
			LastPurchased:    last,
			PredictedRunOut:  runOut,
			DaysUntilRunOut:  daysUntil,
			Urgency:          urgency,
			Confidence:       confidence,
			PurchaseCount:    len(h.times),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		ri, rj := urgencyRank[predictions[i].Urgency], urgencyRank[predictions[j].Urgency]
		if ri != rj {
			return ri < rj
		}
		return predictions[i].DaysUntilRunOut < predictions[j].DaysUntilRunOut
	})

	return predictions
}

// weightedCycle computes the exponentially weighted average interval,
// with the most recent interval weighted highest
func weightedCycle(intervals []float64) float64 {
	var sum, weightSum float64
	weight := 1.0
	for i := len(intervals) - 1; i >= 0; i-- {
		sum += intervals[i] * weight
		weightSum += weight
		weight *= cycleDecay
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// sampleVariance is the variance of intervals around the given mean,
// with the n-1 denominator
func sampleVariance(intervals []float64, mean float64) float64 {
	if len(intervals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range intervals {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(intervals)-1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
