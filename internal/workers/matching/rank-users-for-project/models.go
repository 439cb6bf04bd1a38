// internal/workers/matching/rank-users-for-project/models.go
package rankusersforproject

import "skill-match-workers/internal/models"

type Input struct {
	ProjectID string `json:"projectId"`
	Limit     *int   `json:"limit,omitempty"`
}

type Output struct {
	Matches []models.UserMatchResult `json:"matches"`
	Meta    models.UserRankingMeta   `json:"meta"`
}
