package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(id string, rating float64, types ...string) CandidatePlace {
	return CandidatePlace{ID: id, Name: id, Rating: rating, Types: types}
}

func TestRankBest_ScoreOrdering(t *testing.T) {
	candidates := []CandidatePlace{
		place("A", 4.0, "museum"),
		place("B", 4.8, "restaurant"),
		place("C", 3.0, "park"),
	}

	best, ok := RankBest(candidates, nil)
	require.True(t, ok)
	assert.Equal(t, "A", best.ID)
	assert.Equal(t, 18.0, Score(candidates[0]))
	assert.InDelta(t, 13.6, Score(candidates[1]), 1e-9)
	assert.Equal(t, 12.0, Score(candidates[2]))
}

func TestRankBest_MuseumBeatsRestaurantAtEqualRating(t *testing.T) {
	best, ok := RankBest([]CandidatePlace{
		place("resto", 5.0, "restaurant"),
		place("musee", 5.0, "museum"),
	}, nil)
	require.True(t, ok)
	assert.Equal(t, "musee", best.ID)
}

func TestRankBest_FirstMaximumWins(t *testing.T) {
	best, ok := RankBest([]CandidatePlace{
		place("first", 4.0, "park"),
		place("second", 4.0, "natural_feature"),
	}, nil)
	require.True(t, ok)
	assert.Equal(t, "first", best.ID)
}

func TestRankBest_Exclusion(t *testing.T) {
	candidates := []CandidatePlace{
		place("A", 4.0, "museum"),
		place("B", 4.8, "restaurant"),
	}

	best, ok := RankBest(candidates, map[string]struct{}{"A": {}})
	require.True(t, ok)
	assert.Equal(t, "B", best.ID)

	_, ok = RankBest(candidates, map[string]struct{}{"A": {}, "B": {}})
	assert.False(t, ok)
}

func TestRankBest_Empty(t *testing.T) {
	best, ok := RankBest(nil, nil)
	assert.False(t, ok)
	assert.Equal(t, CandidatePlace{}, best)
}

func TestRankBest_ZeroScoreCandidateStillReturned(t *testing.T) {
	// Untagged, unrated places score 2 and must still be selectable.
	best, ok := RankBest([]CandidatePlace{place("x", 0)}, nil)
	require.True(t, ok)
	assert.Equal(t, "x", best.ID)
}

func TestRankBest_Idempotent(t *testing.T) {
	candidates := []CandidatePlace{
		place("a", 3.1, "cafe", "point_of_interest"),
		place("b", 4.2, "tourist_attraction"),
		place("c", 4.9, "bar"),
	}
	exclude := map[string]struct{}{"b": {}}

	first, ok1 := RankBest(candidates, exclude)
	second, ok2 := RankBest(candidates, exclude)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
	assert.Len(t, exclude, 1)
}

func TestTypeScore_FirstMatchingTier(t *testing.T) {
	assert.Equal(t, 10.0, TypeScore(place("", 0, "restaurant", "museum")))
	assert.Equal(t, 8.0, TypeScore(place("", 0, "tourist_attraction", "park")))
	assert.Equal(t, 6.0, TypeScore(place("", 0, "natural_feature")))
	assert.Equal(t, 4.0, TypeScore(place("", 0, "cafe")))
	assert.Equal(t, 2.0, TypeScore(place("", 0, "bar")))
}

func TestCandidatePlace_Category(t *testing.T) {
	assert.Equal(t, "church", place("", 0, "church", "place_of_worship").Category())
	assert.Equal(t, "point_of_interest", place("", 0).Category())
}

func TestIsPertinent(t *testing.T) {
	assert.True(t, IsPertinent([]string{"establishment", "museum"}))
	assert.False(t, IsPertinent([]string{"establishment", "lodging"}))
	assert.False(t, IsPertinent(nil))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("beach")
	require.NoError(t, err)
	assert.Equal(t, CategoryBeach, c)

	_, err = ParseCategory("lodging")
	assert.Error(t, err)

	assert.Len(t, Categories(), 33)
}
