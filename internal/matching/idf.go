package matching

import (
	"math"

	"skill-match-workers/internal/models"
)

// ComputeIDF returns idf(skill) = ln(totalUsers/usersWithSkill) + 1 for every
// skill in the snapshot. A precomputed snapshot.IDF is returned unchanged.
// Counts come from SkillCorpus when present, otherwise from the users' own
// skill lists.
func ComputeIDF(snapshot *models.CorpusSnapshot) models.IDFMap {
	if snapshot == nil {
		return models.IDFMap{}
	}
	if snapshot.IDF != nil {
		return snapshot.IDF
	}

	totalUsers := snapshot.TotalUsers
	if totalUsers <= 0 {
		totalUsers = len(snapshot.Users)
	}
	if totalUsers < 1 {
		totalUsers = 1
	}

	counts := skillUserCounts(snapshot)
	idf := make(models.IDFMap, len(counts))
	for skill, count := range counts {
		idf[skill] = smoothedIDF(totalUsers, count)
	}
	return idf
}

// smoothedIDF floors the skill count to 1 and caps it at totalUsers so the
// weight is always at least 1.
func smoothedIDF(totalUsers, usersWithSkill int) float64 {
	if usersWithSkill < 1 {
		usersWithSkill = 1
	}
	if usersWithSkill > totalUsers {
		usersWithSkill = totalUsers
	}
	return math.Log(float64(totalUsers)/float64(usersWithSkill)) + 1
}

func skillUserCounts(snapshot *models.CorpusSnapshot) map[string]int {
	counts := make(map[string]int)

	if len(snapshot.SkillCorpus) > 0 {
		for _, stat := range snapshot.SkillCorpus {
			skill := NormalizeToken(stat.Title)
			if skill == "" {
				continue
			}
			if c, ok := counts[skill]; !ok || stat.UserCount > c {
				counts[skill] = stat.UserCount
			}
		}
		return counts
	}

	for _, user := range snapshot.Users {
		titles := make([]string, 0, len(user.Skills))
		for _, s := range user.Skills {
			titles = append(titles, s.Title)
		}
		for _, skill := range NormalizeTokens(titles) {
			counts[skill]++
		}
	}
	return counts
}
