package activity

// typeTiers are checked in order; the first tier sharing a tag with the place wins.
var typeTiers = []struct {
	categories []PertinentCategory
	score      float64
}{
	{[]PertinentCategory{CategoryMuseum}, 10},
	{[]PertinentCategory{CategoryMonument, CategoryTouristAttraction}, 8},
	{[]PertinentCategory{CategoryPark, CategoryNaturalFeature}, 6},
	{[]PertinentCategory{CategoryRestaurant, CategoryCafe}, 4},
}

const fallbackTypeScore = 2

// TypeScore returns the category pertinence component of a place's score.
func TypeScore(p CandidatePlace) float64 {
	for _, tier := range typeTiers {
		for _, c := range tier.categories {
			if p.HasType(c) {
				return tier.score
			}
		}
	}
	return fallbackTypeScore
}

// Score is rating*2 plus the type score.
func Score(p CandidatePlace) float64 {
	return p.Rating*2 + TypeScore(p)
}

// RankBest returns the highest scoring candidate whose ID is not in exclude.
// Ties keep the first candidate encountered. The second result is false when
// candidates is empty or every candidate is excluded.
func RankBest(candidates []CandidatePlace, exclude map[string]struct{}) (CandidatePlace, bool) {
	var best CandidatePlace
	found := false
	bestScore := 0.0

	for _, c := range candidates {
		if _, skip := exclude[c.ID]; skip {
			continue
		}
		s := Score(c)
		if !found || s > bestScore {
			best = c
			bestScore = s
			found = true
		}
	}
	return best, found
}
