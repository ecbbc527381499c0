package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-travel-ai/itinerary-engine/internal/types"
)

func TestResolveCategoriesUnionsStylesAndTraveler(t *testing.T) {
	got := ResolveCategories([]string{"historical"}, types.TravelerCouple)

	assert.Contains(t, got, "castle")              // from the style
	assert.Contains(t, got, "restaurant")          // from the traveler type
	assert.Contains(t, got, "historical_landmark") // in both, deduplicated

	seen := map[string]int{}
	for _, c := range got {
		seen[c]++
	}
	for c, n := range seen {
		assert.Equal(t, 1, n, "category %s duplicated", c)
	}
}

func TestResolveCategoriesDeterministicOrder(t *testing.T) {
	a := ResolveCategories([]string{"nature", "cultural"}, types.TravelerFamily)
	b := ResolveCategories([]string{"cultural", "nature"}, types.TravelerFamily)
	assert.Equal(t, a, b)
}

func TestResolveCategoriesFallsBackToDefault(t *testing.T) {
	got := ResolveCategories(nil, types.TravelerType("unknown_value"))
	require.NotEmpty(t, got)
	assert.ElementsMatch(t, []string{"restaurant", "tourist_attraction", "museum", "park"}, got)

	// Unrecognized styles behave the same way.
	got = ResolveCategories([]string{"underwater_basket_weaving"}, types.TravelerType("robot"))
	assert.ElementsMatch(t, []string{"restaurant", "tourist_attraction", "museum", "park"}, got)
}

func TestMatchScore(t *testing.T) {
	requested := CategorySet([]string{"museum", "park", "castle", "cafe"})

	tests := []struct {
		name       string
		categories []string
		wantScore  float64
		wantCount  int
	}{
		{"no match gets baseline credit", []string{"night_club"}, 0.3, 0},
		{"single match", []string{"museum"}, 1.0, 1},
		{"two matches", []string{"museum", "park"}, 1.15, 2},
		{"three matches", []string{"museum", "park", "castle"}, 1.3, 3},
		{"bonus capped beyond three", []string{"museum", "park", "castle", "cafe"}, 1.3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := MatchScore(tt.categories, requested)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
			assert.Len(t, matched, tt.wantCount)
		})
	}
}

func TestMatchScoreMonotonicInMatches(t *testing.T) {
	requested := CategorySet([]string{"museum", "park", "castle"})
	prev := -1.0
	for _, cats := range [][]string{
		{"night_club"},
		{"museum"},
		{"museum", "park"},
		{"museum", "park", "castle"},
	} {
		score, _ := MatchScore(cats, requested)
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}
