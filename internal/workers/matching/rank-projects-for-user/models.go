// internal/workers/matching/rank-projects-for-user/models.go
package rankprojectsforuser

import "skill-match-workers/internal/models"

// Input mirrors the job variables. Pointer fields distinguish an explicit
// zero from an omitted value.
type Input struct {
	UserID      string   `json:"userId"`
	Limit       *int     `json:"limit,omitempty"`
	MinScore    *float64 `json:"minScore,omitempty"`
	SearchQuery *string  `json:"searchQuery,omitempty"`
}

type Output struct {
	Matches []models.MatchResult `json:"matches"`
	Meta    models.RankingMeta   `json:"meta"`
}
