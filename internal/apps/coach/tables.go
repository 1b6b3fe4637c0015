package coach

import "sort"

// foodTable maps meal keywords to base kcal per typical portion. Values are
// rough single-serving estimates, not nutritional data.
var foodTable = map[string]int{
	// South Indian staples
	"idli":        65,
	"dosa":        120,
	"masala dosa": 250,
	"sambar":      150,
	"chutney":     50,
	"upma":        200,
	"poha":        180,
	"vada":        120,
	"pongal":      300,

	// Rice and grains
	"rice":       200,
	"brown rice": 190,
	"roti":       85,
	"chapati":    85,
	"paratha":    180,
	"quinoa":     170,

	// Proteins
	"chicken curry": 250,
	"fish curry":    200,
	"dal":           150,
	"paneer":        200,
	"egg":           75,
	"boiled egg":    75,
	"omelette":      150,
	"curd":          100,
	"greek yogurt":  120,

	// Snacks and others
	"coffee":  40,
	"tea":     40,
	"sugar":   20,
	"biscuit": 50,
	"fruit":   80,
	"nuts":    150,
}

// metTable maps activity keywords to MET values.
var metTable = map[string]float64{
	"walk":           3.5,
	"brisk walk":     4.5,
	"gym":            6.0,
	"weight lifting": 5.0,
	"yoga":           3.0,
	"cardio":         8.0,
	"hiit":           10.0,
	"home workout":   5.0,
	"cycling":        6.0,
	"swimming":       7.0,
}

// Keyword lookups resolve longest key first so that "masala dosa" wins over
// "dosa" and "brown rice" over "rice". Map iteration order is not meaningful,
// so both tables are flattened into sorted key slices at init.
var (
	foodKeys = sortedKeysByLength(foodTable)
	metKeys  = sortedKeysByLengthFloat(metTable)
)

func sortedKeysByLength(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func sortedKeysByLengthFloat(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
