package matching

import (
	"math"

	"skill-match-workers/internal/models"
)

// Signals holds the raw sub-scores of one candidate.
type Signals struct {
	SearchRelevance float64
	SkillSimilarity float64
	InterestBoost   float64
	Recency         float64
	Engagement      float64
}

type Weights struct {
	SearchRelevance float64
	SkillSimilarity float64
	InterestBoost   float64
	Recency         float64
	Engagement      float64
}

// Compose sums the weighted signals and clamps the total at 1.0. The clamp
// is applied once, after the sum.
func (w Weights) Compose(s Signals) float64 {
	total := w.SearchRelevance*s.SearchRelevance +
		w.SkillSimilarity*s.SkillSimilarity +
		w.InterestBoost*s.InterestBoost +
		w.Recency*s.Recency +
		w.Engagement*s.Engagement
	return math.Min(total, 1.0)
}

// Regime is one row of the weighting table.
type Regime struct {
	Name      models.RankingRegime
	Algorithm string
	Weights   Weights
}

var (
	DiscoveryRegime = Regime{
		Name:      models.RegimeDiscovery,
		Algorithm: models.AlgorithmSkillMatch,
		Weights: Weights{
			SearchRelevance: 0,
			SkillSimilarity: 1,
			InterestBoost:   1,
			Recency:         1,
			Engagement:      1,
		},
	}

	SearchRegime = Regime{
		Name:      models.RegimeSearch,
		Algorithm: models.AlgorithmSkillMatchSearch,
		Weights: Weights{
			SearchRelevance: 0.40,
			SkillSimilarity: 0.35,
			InterestBoost:   0.50,
			Recency:         0.50,
			Engagement:      0.50,
		},
	}
)

func SelectRegime(hasQuery bool) Regime {
	if hasQuery {
		return SearchRegime
	}
	return DiscoveryRegime
}

func roundPercent(v float64) int {
	return int(math.Round(v * 100))
}
