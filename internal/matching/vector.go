package matching

import (
	"strings"

	"skill-match-workers/internal/models"
)

const (
	baseSkillWeight      = 1.0
	portfolioSkillWeight = 1.5
	defaultInterestLevel = 0.5
)

// UserSkillVector maps a skill token to the user's expertise weight.
type UserSkillVector map[string]float64

// InterestMap maps an interest token to the weight of its declared level.
type InterestMap map[string]float64

var interestLevelWeights = map[string]float64{
	"high":   1.0,
	"medium": 0.7,
	"low":    0.4,
}

// BuildUserVector weights each skill 1.0, or 1.5 when a portfolio link is
// present. Repeated titles keep the highest weight.
func BuildUserVector(skills []models.UserSkill) UserSkillVector {
	vector := make(UserSkillVector, len(skills))
	for _, s := range skills {
		token := NormalizeToken(s.Title)
		if token == "" {
			continue
		}
		weight := baseSkillWeight
		if strings.TrimSpace(s.Portfolio) != "" {
			weight = portfolioSkillWeight
		}
		if weight > vector[token] {
			vector[token] = weight
		}
	}
	return vector
}

// InterestLevelWeight maps High/Medium/Low (any case) to 1.0/0.7/0.4 and
// anything else to 0.5.
func InterestLevelWeight(level models.InterestLevel) float64 {
	if w, ok := interestLevelWeights[NormalizeToken(string(level))]; ok {
		return w
	}
	return defaultInterestLevel
}

func BuildInterestMap(interests []models.UserInterest) InterestMap {
	m := make(InterestMap, len(interests))
	for _, in := range interests {
		token := NormalizeToken(in.Title)
		if token == "" {
			continue
		}
		if w := InterestLevelWeight(in.Level); w > m[token] {
			m[token] = w
		}
	}
	return m
}

// ExtractProjectSkills returns the project's required skill tokens.
func ExtractProjectSkills(project models.Project) []string {
	return NormalizeSkills(project.Skills)
}
