package matching

import (
	"context"
	stderrors "errors"
	"testing"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainMatch(t *testing.T) {
	created := fixedNow
	snapshot := &models.CorpusSnapshot{
		Users: []models.User{{
			ID:        "U",
			Skills:    []models.UserSkill{{Title: "Go"}, {Title: "SQL"}},
			Interests: []models.UserInterest{{Title: "fintech", Level: models.InterestMedium}},
		}},
		Projects: []models.Project{{
			ID:          "p1",
			Title:       "Fintech ledger",
			Description: "Double-entry bookkeeping service",
			AuthorID:    "X",
			Skills:      models.SkillsFromList("Go", "Kafka"),
			CreatedAt:   &created,
		}},
	}

	exp, err := newTestEngine(t, nil).ExplainMatch(context.Background(), "U", "p1", snapshot)
	require.NoError(t, err)

	assert.Equal(t, "p1", exp.ProjectID)
	assert.Equal(t, "Fintech ledger", exp.Title)
	assert.Equal(t, "1 of 2 required skills match your profile", exp.Explanation.SkillMatch)
	assert.Equal(t, "+14% boost from 1 matching interests", exp.Explanation.InterestBoost)
	assert.Equal(t, "+10% recency bonus", exp.Explanation.RecencyBonus)
	assert.Equal(t, "+0% engagement bonus", exp.Explanation.EngagementBonus)
	assert.Equal(t, []string{"go"}, exp.Explanation.MatchingSkills)
	assert.Contains(t, exp.Explanation.SkillSimilarity, "% skill similarity score")
	assert.Greater(t, exp.MatchScore, 0)
}

func TestExplainMatch_NoInterestBoost(t *testing.T) {
	snapshot := &models.CorpusSnapshot{
		Users:    []models.User{user("U", "Go")},
		Projects: []models.Project{project("p1", "X", "go")},
	}

	exp, err := newTestEngine(t, nil).ExplainMatch(context.Background(), "U", "p1", snapshot)
	require.NoError(t, err)
	assert.Equal(t, "No interest boost applied", exp.Explanation.InterestBoost)
	assert.Equal(t, "100% skill similarity score", exp.Explanation.SkillSimilarity)
	assert.Equal(t, 100, exp.MatchScore)
}

func TestExplainMatch_OwnOrMissingProject(t *testing.T) {
	snapshot := &models.CorpusSnapshot{
		Users:    []models.User{user("U", "Go")},
		Projects: []models.Project{project("mine", "U", "go")},
	}
	engine := newTestEngine(t, nil)

	_, err := engine.ExplainMatch(context.Background(), "U", "mine", snapshot)
	assert.True(t, stderrors.Is(err, errors.ErrProjectNotFound))

	_, err = engine.ExplainMatch(context.Background(), "U", "nope", snapshot)
	assert.True(t, stderrors.Is(err, errors.ErrProjectNotFound))
}
