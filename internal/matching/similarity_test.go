package matching

import (
	"testing"

	"skill-match-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity_ZeroVectors(t *testing.T) {
	idf := models.IDFMap{"react": 2}

	assert.Equal(t, 0.0, CosineSimilarity(UserSkillVector{"react": 1}, []string{}, idf))
	assert.Equal(t, 0.0, CosineSimilarity(UserSkillVector{"react": 1}, nil, idf))
	assert.Equal(t, 0.0, CosineSimilarity(UserSkillVector{}, []string{"react"}, idf))
	assert.Equal(t, 0.0, CosineSimilarity(nil, []string{"react"}, nil))
	assert.Equal(t, 0.0, CosineSimilarity(UserSkillVector{"react": 0}, []string{"react"}, idf))
}

func TestCosineSimilarity_SingleDimensionIsExactlyOne(t *testing.T) {
	sim := CosineSimilarity(UserSkillVector{"react": 1.0}, []string{"react"}, models.IDFMap{"react": 2.0})
	assert.Equal(t, 1.0, sim)
}

func TestCosineSimilarity_IdenticalSetsAreMaximal(t *testing.T) {
	user := UserSkillVector{"go": 1, "sql": 1, "docker": 1}
	sim := CosineSimilarity(user, []string{"docker", "go", "sql"}, models.IDFMap{"go": 1.7, "sql": 1.2})
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineSimilarity_NoOverlap(t *testing.T) {
	sim := CosineSimilarity(UserSkillVector{"python": 1}, []string{"react"}, nil)
	assert.Equal(t, 0.0, sim)
}

func TestCosineSimilarity_RareSkillsWeighMore(t *testing.T) {
	user := UserSkillVector{"javascript": 1, "haskell": 1}
	idf := models.IDFMap{"javascript": 1.0, "haskell": 3.0}

	common := CosineSimilarity(user, []string{"javascript"}, idf)
	rare := CosineSimilarity(user, []string{"haskell"}, idf)

	assert.Greater(t, rare, common)
	assert.InDelta(t, 0.3162, common, 1e-4)
	assert.InDelta(t, 0.9487, rare, 1e-4)
}

func TestCosineSimilarity_Bounded(t *testing.T) {
	users := []UserSkillVector{
		{"a": 1.5, "b": 1, "c": 1},
		{"a": 1},
		{"z": 1.5},
		{"a": 1e9, "b": 1e-9},
	}
	projects := [][]string{{"a"}, {"a", "b", "c", "d"}, {"z", "a"}, {"q"}}
	idf := models.IDFMap{"a": 1.1, "b": 5.2, "c": 1, "d": 9.9, "z": 0.0001}

	for _, u := range users {
		for _, p := range projects {
			sim := CosineSimilarity(u, p, idf)
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0)
		}
	}
}
