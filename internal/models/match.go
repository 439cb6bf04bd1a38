// internal/models/match.go
package models

import "time"

type SearchMatch struct {
	Field   string `json:"field"`
	Keyword string `json:"keyword"`
}

// MatchDetails is the per-factor breakdown of a project's matchScore.
// Scores are rounded percentages. The search fields are nil outside the
// search regime.
type MatchDetails struct {
	SkillSimilarity     int           `json:"skillSimilarity"`
	InterestBoost       int           `json:"interestBoost"`
	SearchRelevance     *int          `json:"searchRelevance"`
	SearchMatches       []SearchMatch `json:"searchMatches"`
	SearchKeywords      []string      `json:"searchKeywords"`
	RecencyBonus        int           `json:"recencyBonus"`
	EngagementBonus     int           `json:"engagementBonus"`
	MatchingSkills      []string      `json:"matchingSkills"`
	MatchingSkillCount  int           `json:"matchingSkillCount"`
	TotalRequiredSkills int           `json:"totalRequiredSkills"`
	InterestMatches     int           `json:"interestMatches"`
}

type MatchResult struct {
	Project
	MatchScore   int          `json:"matchScore"`
	MatchDetails MatchDetails `json:"matchDetails"`
}

type RankingMeta struct {
	TotalProjects     int       `json:"totalProjects"`
	MatchedProjects   int       `json:"matchedProjects"`
	UserSkillCount    int       `json:"userSkillCount"`
	UserInterestCount int       `json:"userInterestCount"`
	SearchQuery       *string   `json:"searchQuery"`
	Algorithm         string    `json:"algorithm"`
	Timestamp         time.Time `json:"timestamp"`
	RequestID         string    `json:"requestId"`
	Message           string    `json:"message,omitempty"`
}

type RankingResponse struct {
	Matches []MatchResult `json:"matches"`
	Meta    RankingMeta   `json:"meta"`
}

type UserMatchResult struct {
	ID                 string      `json:"id"`
	FullName           string      `json:"fullName"`
	Email              string      `json:"email"`
	Skills             []UserSkill `json:"skills"`
	MatchScore         int         `json:"matchScore"`
	MatchingSkills     []string    `json:"matchingSkills"`
	MatchingSkillCount int         `json:"matchingSkillCount"`
}

type UserRankingMeta struct {
	ProjectID         string    `json:"projectId"`
	RequiredSkills    []string  `json:"requiredSkills"`
	TotalCandidates   int       `json:"totalCandidates"`
	MatchedCandidates int       `json:"matchedCandidates"`
	Algorithm         string    `json:"algorithm"`
	Timestamp         time.Time `json:"timestamp"`
	RequestID         string    `json:"requestId"`
	Message           string    `json:"message,omitempty"`
}

type UserRankingResponse struct {
	Matches []UserMatchResult `json:"matches"`
	Meta    UserRankingMeta   `json:"meta"`
}

type Explanation struct {
	SkillMatch      string   `json:"skillMatch"`
	SkillSimilarity string   `json:"skillSimilarity"`
	InterestBoost   string   `json:"interestBoost"`
	RecencyBonus    string   `json:"recencyBonus"`
	EngagementBonus string   `json:"engagementBonus"`
	MatchingSkills  []string `json:"matchingSkills"`
}

type MatchExplanation struct {
	ProjectID   string      `json:"projectId"`
	Title       string      `json:"title"`
	MatchScore  int         `json:"matchScore"`
	Explanation Explanation `json:"explanation"`
}
