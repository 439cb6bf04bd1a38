package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type UserRankingOptions struct {
	Limit int
}

// RankUsersForProject scores every user who is neither the author nor a
// member by the share of the project's required skills they hold. No IDF
// weighting is applied.
func (e *Engine) RankUsersForProject(ctx context.Context, projectID string, snapshot *models.CorpusSnapshot, opts UserRankingOptions) (*models.UserRankingResponse, error) {
	if snapshot == nil {
		return nil, errors.NewCorpusUnavailableError("snapshot", fmt.Errorf("no snapshot for project %s", projectID))
	}

	start := time.Now()
	limit := e.effectiveLimit(opts.Limit)

	_, span := e.tracer.Start(ctx, "matching.RankUsersForProject", trace.WithAttributes(
		attribute.String("project.id", projectID),
		attribute.Int("matching.limit", limit),
	))
	defer span.End()

	project, ok := snapshot.FindProject(projectID)
	if !ok {
		return nil, errors.NewProjectNotFoundError(projectID)
	}

	required := ExtractProjectSkills(project)
	meta := models.UserRankingMeta{
		ProjectID:      projectID,
		RequiredSkills: required,
		Algorithm:      models.AlgorithmUserMatch,
		Timestamp:      e.now().UTC(),
		RequestID:      e.newID(),
	}
	if len(required) == 0 {
		meta.Message = models.MessageNoProjectSkills
		return &models.UserRankingResponse{Matches: []models.UserMatchResult{}, Meta: meta}, nil
	}

	matches := make([]models.UserMatchResult, 0)
	for _, user := range snapshot.Users {
		if project.HasMember(user.ID) {
			continue
		}
		meta.TotalCandidates++

		if r := scoreUser(user, required); r.MatchScore > 0 {
			matches = append(matches, r)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	meta.MatchedCandidates = len(matches)

	span.SetAttributes(
		attribute.Int("matching.candidates", meta.TotalCandidates),
		attribute.Int("matching.matched", len(matches)),
	)
	e.logger.Info("User ranking completed", map[string]interface{}{
		"projectId":  projectID,
		"candidates": meta.TotalCandidates,
		"matched":    len(matches),
		"duration":   time.Since(start).String(),
	})

	return &models.UserRankingResponse{Matches: matches, Meta: meta}, nil
}

func scoreUser(user models.User, required []string) models.UserMatchResult {
	held := make(map[string]struct{}, len(user.Skills))
	for _, s := range user.Skills {
		if token := NormalizeToken(s.Title); token != "" {
			held[token] = struct{}{}
		}
	}

	matching := make([]string, 0, len(required))
	for _, skill := range required {
		if _, ok := held[skill]; ok {
			matching = append(matching, skill)
		}
	}

	return models.UserMatchResult{
		ID:                 user.ID,
		FullName:           user.FullName,
		Email:              user.Email,
		Skills:             user.Skills,
		MatchScore:         int(math.Round(float64(len(matching)) / float64(len(required)) * 100)),
		MatchingSkills:     matching,
		MatchingSkillCount: len(matching),
	}
}
