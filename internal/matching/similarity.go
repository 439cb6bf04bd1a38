package matching

import (
	"math"
	"sort"

	"skill-match-workers/internal/models"
)

// CosineSimilarity scores a user vector against a project's required skills
// in the space spanned by both. The user component of a skill is
// weight*idf, the project component idf when required. The result is in
// [0,1] and is 0 when either side has no skills.
func CosineSimilarity(user UserSkillVector, projectSkills []string, idf models.IDFMap) float64 {
	if len(user) == 0 || len(projectSkills) == 0 {
		return 0
	}

	required := make(map[string]struct{}, len(projectSkills))
	for _, s := range projectSkills {
		required[s] = struct{}{}
	}

	var dot, userNorm, projectNorm float64
	for _, skill := range skillSpace(user, required) {
		w := idf.Weight(skill)
		u := user[skill] * w
		var p float64
		if _, ok := required[skill]; ok {
			p = w
		}
		dot += u * p
		userNorm += u * u
		projectNorm += p * p
	}

	userNorm = math.Sqrt(userNorm)
	projectNorm = math.Sqrt(projectNorm)
	if userNorm == 0 || projectNorm == 0 {
		return 0
	}
	return clampUnit(dot / (userNorm * projectNorm))
}

// skillSpace returns the sorted union of both key sets so sums are
// accumulated in a fixed order.
func skillSpace(user UserSkillVector, required map[string]struct{}) []string {
	space := make([]string, 0, len(user)+len(required))
	for s := range user {
		space = append(space, s)
	}
	for s := range required {
		if _, ok := user[s]; !ok {
			space = append(space, s)
		}
	}
	sort.Strings(space)
	return space
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
