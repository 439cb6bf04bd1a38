package matching

import (
	"context"
	"fmt"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ExplainMatch scores a single project for a user in the discovery regime,
// with no threshold, and renders each factor as a sentence. The user's own
// projects are reported as not found.
func (e *Engine) ExplainMatch(ctx context.Context, userID, projectID string, snapshot *models.CorpusSnapshot) (*models.MatchExplanation, error) {
	if snapshot == nil {
		return nil, errors.NewCorpusUnavailableError("snapshot", fmt.Errorf("no snapshot for user %s", userID))
	}

	_, span := e.tracer.Start(ctx, "matching.ExplainMatch", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("project.id", projectID),
	))
	defer span.End()

	project, ok := snapshot.FindProject(projectID)
	if !ok || project.AuthorID == userID {
		return nil, errors.NewProjectNotFoundError(projectID)
	}

	uc := e.userContext(userID, snapshot, DiscoveryRegime, false)
	result := uc.score(candidate{project: project, search: SearchRelevance(project, "")})
	d := result.MatchDetails

	interestLine := "No interest boost applied"
	if d.InterestBoost > 0 {
		interestLine = fmt.Sprintf("+%d%% boost from %d matching interests", d.InterestBoost, d.InterestMatches)
	}

	return &models.MatchExplanation{
		ProjectID:  project.ID,
		Title:      project.Title,
		MatchScore: result.MatchScore,
		Explanation: models.Explanation{
			SkillMatch:      fmt.Sprintf("%d of %d required skills match your profile", d.MatchingSkillCount, d.TotalRequiredSkills),
			SkillSimilarity: fmt.Sprintf("%d%% skill similarity score", d.SkillSimilarity),
			InterestBoost:   interestLine,
			RecencyBonus:    fmt.Sprintf("+%d%% recency bonus", d.RecencyBonus),
			EngagementBonus: fmt.Sprintf("+%d%% engagement bonus", d.EngagementBonus),
			MatchingSkills:  d.MatchingSkills,
		},
	}, nil
}
