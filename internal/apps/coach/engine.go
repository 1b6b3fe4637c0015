package coach

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultBodyWeightKg is assumed when no weight has been logged.
const DefaultBodyWeightKg = 65.0

// fallbackMealCalories is credited when a description matches nothing.
const fallbackMealCalories = 250

// defaultMET is the moderate-intensity fallback for unknown activities.
const defaultMET = 5.0

type EstimatedItem struct {
	Name string `json:"name"`
	Cal  int    `json:"cal"`
}

type Estimate struct {
	Total int             `json:"total"`
	Items []EstimatedItem `json:"items"`
}

// EstimateCalories parses a free-text meal description against the keyword
// table. Longest keys match first and mask their text so substring keys
// ("dosa" inside "masala dosa") do not double count. A leading integer
// quantity multiplies the base value; portion phrases compound on top:
// "large X" x1.5, "small X" x0.7, "bowl of X" x1.2.
//
// This is a best-effort heuristic for self-tracking, not nutrition advice.
func EstimateCalories(input string) Estimate {
	text := strings.ToLower(input)
	est := Estimate{Items: []EstimatedItem{}}

	for _, food := range foodKeys {
		if !strings.Contains(text, food) {
			continue
		}

		multiplier := 1.0
		qtyRe := regexp.MustCompile(`(\d+)\s*` + regexp.QuoteMeta(food))
		if m := qtyRe.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				multiplier = float64(n)
			}
		}

		if strings.Contains(text, "large "+food) {
			multiplier *= 1.5
		}
		if strings.Contains(text, "small "+food) {
			multiplier *= 0.7
		}
		if strings.Contains(text, "bowl of "+food) {
			multiplier *= 1.2
		}

		cal := int(math.Round(float64(foodTable[food]) * multiplier))
		est.Total += cal
		est.Items = append(est.Items, EstimatedItem{Name: food, Cal: cal})

		// Mask the matched keyword so shorter keys cannot re-match it.
		text = strings.ReplaceAll(text, food, strings.Repeat("#", len(food)))
	}

	if est.Total == 0 && len(strings.TrimSpace(input)) > 3 {
		est.Total = fallbackMealCalories
		est.Items = append(est.Items, EstimatedItem{Name: "Estimated Meal", Cal: fallbackMealCalories})
	}

	return est
}

// EstimateBurned returns kcal burned for an activity using the standard
// MET-to-kcal/min formula: kcal/min = MET x 3.5 x weightKg / 200. Activity
// type matches the MET table case-insensitively, longest key first; unknown
// activities fall back to moderate intensity.
func EstimateBurned(activityType string, durationMins int, weightKg float64) int {
	if weightKg <= 0 {
		weightKg = DefaultBodyWeightKg
	}

	activity := strings.ToLower(activityType)
	met := defaultMET
	for _, key := range metKeys {
		if strings.Contains(activity, key) {
			met = metTable[key]
			break
		}
	}

	burned := met * 3.5 * weightKg / 200 * float64(durationMins)
	return int(math.Round(burned))
}

// CalorieTarget derives a daily kcal budget from body weight and activity
// level: a simplified TDEE with a ~20% deficit for gradual fat loss.
func CalorieTarget(weightKg float64, activity string) int {
	base := weightKg * 22
	switch activity {
	case "medium":
		base *= 1.2
	case "high":
		base *= 1.4
	}
	return int(math.Round(base * 0.8))
}
