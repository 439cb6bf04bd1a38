// internal/workers/matching/explain-project-match/models.go
package explainprojectmatch

import "skill-match-workers/internal/models"

type Input struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
}

type Output struct {
	Explanation models.MatchExplanation `json:"explanation"`
}
