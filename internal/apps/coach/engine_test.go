package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateCaloriesSingleKeyword(t *testing.T) {
	est := EstimateCalories("dosa for breakfast")

	assert.Equal(t, 120, est.Total)
	require.Len(t, est.Items, 1)
	assert.Equal(t, "dosa", est.Items[0].Name)
}

func TestEstimateCaloriesQuantity(t *testing.T) {
	est := EstimateCalories("2 idli with chutney")

	// 2x65 idli + 50 chutney
	assert.Equal(t, 180, est.Total)
	assert.Len(t, est.Items, 2)
}

func TestEstimateCaloriesLongestKeyWinsAndMasks(t *testing.T) {
	est := EstimateCalories("masala dosa")

	// "masala dosa" must consume its text so "dosa" cannot match again.
	require.Len(t, est.Items, 1)
	assert.Equal(t, "masala dosa", est.Items[0].Name)
	assert.Equal(t, 250, est.Total)
}

func TestEstimateCaloriesCompoundKeywords(t *testing.T) {
	est := EstimateCalories("brown rice and fish curry")

	// brown rice 190 + fish curry 200; neither "rice" nor "curry"-adjacent
	// shorter keys may re-match.
	assert.Equal(t, 390, est.Total)
	assert.Len(t, est.Items, 2)
}

func TestEstimateCaloriesPortionModifiers(t *testing.T) {
	assert.Equal(t, 300, EstimateCalories("large rice").Total)
	assert.Equal(t, 140, EstimateCalories("small rice").Total)
	assert.Equal(t, 240, EstimateCalories("bowl of rice").Total)
}

func TestEstimateCaloriesQuantityMustBeAdjacent(t *testing.T) {
	// 2x85 roti + 150 dal
	assert.Equal(t, 320, EstimateCalories("2 roti with dal").Total)
	// A number elsewhere in the text does not multiply.
	assert.Equal(t, 85, EstimateCalories("roti at 8 pm").Total)
}

func TestEstimateCaloriesFallback(t *testing.T) {
	est := EstimateCalories("leftover casserole")

	assert.Equal(t, 250, est.Total)
	require.Len(t, est.Items, 1)
	assert.Equal(t, "Estimated Meal", est.Items[0].Name)
}

func TestEstimateCaloriesTooShortForFallback(t *testing.T) {
	est := EstimateCalories("xyz")

	assert.Equal(t, 0, est.Total)
	assert.Empty(t, est.Items)
}

func TestEstimateBurnedKnownActivity(t *testing.T) {
	// 3.5 MET x 3.5 x 70kg / 200 x 30min = 128.6
	assert.Equal(t, 129, EstimateBurned("Walk", 30, 70))
}

func TestEstimateBurnedLongestKeyFirst(t *testing.T) {
	// "brisk walk" (4.5) must win over the embedded "walk" (3.5).
	assert.Equal(t, 165, EstimateBurned("Brisk Walk", 30, 70))
}

func TestEstimateBurnedUnknownActivityUsesModerateMET(t *testing.T) {
	// 5.0 MET fallback
	assert.Equal(t, 184, EstimateBurned("dance class", 30, 70))
}

func TestEstimateBurnedZeroWeightUsesDefault(t *testing.T) {
	want := EstimateBurned("yoga", 45, DefaultBodyWeightKg)
	assert.Equal(t, want, EstimateBurned("yoga", 45, 0))
}

func TestCalorieTarget(t *testing.T) {
	assert.Equal(t, 1144, CalorieTarget(65, "low"))
	assert.Equal(t, 1373, CalorieTarget(65, "medium"))
	assert.Equal(t, 1602, CalorieTarget(65, "high"))
}
