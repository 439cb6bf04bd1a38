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

func TestRankUsersForProject(t *testing.T) {
	p := project("p1", "author", "React", "Node", "GraphQL", "Docker")
	p.Members = []models.ProjectMember{{UserID: "member", Role: "dev", Status: "accepted"}}

	snapshot := &models.CorpusSnapshot{
		Users: []models.User{
			user("author", "React", "Node", "GraphQL", "Docker"),
			user("member", "React", "Node"),
			user("half", "node", "REACT", "Python"),
			user("none", "Cobol"),
			user("quarter", "Docker"),
			user("all", "Docker", "GraphQL", "Node", "React"),
			user("half2", "graphql", "docker"),
		},
		Projects: []models.Project{p},
	}

	resp, err := newTestEngine(t, nil).RankUsersForProject(context.Background(), "p1", snapshot, UserRankingOptions{})
	require.NoError(t, err)

	got := make([]string, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		got = append(got, m.ID)
	}
	assert.Equal(t, []string{"all", "half", "half2", "quarter"}, got)

	assert.Equal(t, 100, resp.Matches[0].MatchScore)
	assert.Equal(t, 50, resp.Matches[1].MatchScore)
	assert.Equal(t, []string{"react", "node"}, resp.Matches[1].MatchingSkills)
	assert.Equal(t, 2, resp.Matches[1].MatchingSkillCount)
	assert.Equal(t, 25, resp.Matches[3].MatchScore)

	assert.Equal(t, "p1", resp.Meta.ProjectID)
	assert.Equal(t, []string{"react", "node", "graphql", "docker"}, resp.Meta.RequiredSkills)
	assert.Equal(t, 5, resp.Meta.TotalCandidates)
	assert.Equal(t, 4, resp.Meta.MatchedCandidates)
	assert.Equal(t, models.AlgorithmUserMatch, resp.Meta.Algorithm)
	assert.Empty(t, resp.Meta.Message)
}

func TestRankUsersForProject_RoundsAndLimits(t *testing.T) {
	snapshot := &models.CorpusSnapshot{
		Users: []models.User{
			user("one", "a"),
			user("two", "a", "b"),
			user("three", "a", "b", "c"),
		},
		Projects: []models.Project{project("p", "x", "a", "b", "c")},
	}

	resp, err := newTestEngine(t, nil).RankUsersForProject(context.Background(), "p", snapshot, UserRankingOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, 100, resp.Matches[0].MatchScore)
	assert.Equal(t, 67, resp.Matches[1].MatchScore)
	assert.Equal(t, 3, resp.Meta.TotalCandidates)
	assert.Equal(t, 2, resp.Meta.MatchedCandidates)
}

func TestRankUsersForProject_NoSkillsIsNotAnError(t *testing.T) {
	snapshot := &models.CorpusSnapshot{
		Users:    []models.User{user("u", "go")},
		Projects: []models.Project{{ID: "empty", AuthorID: "x", Skills: models.SkillsFromText(" , ")}},
	}

	resp, err := newTestEngine(t, nil).RankUsersForProject(context.Background(), "empty", snapshot, UserRankingOptions{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Matches)
	assert.Empty(t, resp.Matches)
	assert.Equal(t, models.MessageNoProjectSkills, resp.Meta.Message)
}

func TestRankUsersForProject_NotFound(t *testing.T) {
	snapshot := &models.CorpusSnapshot{Projects: []models.Project{project("p", "x", "go")}}

	resp, err := newTestEngine(t, nil).RankUsersForProject(context.Background(), "missing", snapshot, UserRankingOptions{})
	assert.Nil(t, resp)
	assert.True(t, stderrors.Is(err, errors.ErrProjectNotFound))
	assert.False(t, stderrors.Is(err, errors.ErrCorpusUnavailable))
}
