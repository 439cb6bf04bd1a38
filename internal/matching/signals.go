package matching

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"skill-match-workers/internal/models"
)

const (
	interestBoostFactor = 0.2

	recencyMax       = 0.1
	recencyDecayDays = 30.0

	engagementFactor = 0.1
	engagementMax    = 0.15

	titleRelevance       = 0.4
	skillsRelevance      = 0.35
	descriptionRelevance = 0.25
)

// InterestBoost adds weight*0.2 for every interest token found in the
// project's title and description. It is not capped.
func InterestBoost(project models.Project, interests InterestMap) (boost float64, matchCount int) {
	if len(interests) == 0 {
		return 0, 0
	}
	content := strings.ToLower(project.Title) + " " + strings.ToLower(project.Description)

	tokens := make([]string, 0, len(interests))
	for t := range interests {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	for _, t := range tokens {
		if strings.Contains(content, t) {
			boost += interests[t] * interestBoostFactor
			matchCount++
		}
	}
	return boost, matchCount
}

// RecencyScore decays from 0.1 with a 30 day time constant. Timestamps in
// the future count as created now.
func RecencyScore(createdAt *time.Time, now time.Time) float64 {
	if createdAt == nil || createdAt.IsZero() {
		return 0
	}
	days := now.Sub(*createdAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-days/recencyDecayDays) * recencyMax
}

// EngagementScore log-damps views and likes and caps the result at 0.15.
func EngagementScore(stats *models.ProjectStats) float64 {
	if stats == nil {
		return 0
	}
	views := math.Max(float64(stats.Views), 0)
	likes := math.Max(float64(stats.Likes), 0)
	score := (math.Log(views+1)/10 + math.Log(likes+1)/5) * engagementFactor
	return math.Min(score, engagementMax)
}

// SearchResult is the outcome of matching one project against a query.
// Keywords is nil when there was no query.
type SearchResult struct {
	Score    float64
	Matches  []models.SearchMatch
	Keywords []string
}

// HasQuery reports whether query holds anything besides whitespace.
func HasQuery(query string) bool {
	return strings.TrimSpace(query) != ""
}

// SearchKeywords lowercases the query and splits it on whitespace, keeping
// keywords longer than one character.
func SearchKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// SearchRelevance awards 0.4 per keyword found in the title, 0.35 when any
// skill contains it and 0.25 for the description, then averages over the
// keywords and clamps to 1.
func SearchRelevance(project models.Project, query string) SearchResult {
	if !HasQuery(query) {
		return SearchResult{Matches: []models.SearchMatch{}}
	}

	keywords := SearchKeywords(query)
	result := SearchResult{Matches: []models.SearchMatch{}, Keywords: keywords}
	if len(keywords) == 0 {
		return result
	}

	title := strings.ToLower(project.Title)
	description := strings.ToLower(project.Description)
	skills := ExtractProjectSkills(project)

	var score float64
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			score += titleRelevance
			result.Matches = append(result.Matches, models.SearchMatch{Field: "title", Keyword: kw})
		}
		if anyContains(skills, kw) {
			score += skillsRelevance
			result.Matches = append(result.Matches, models.SearchMatch{Field: "skills", Keyword: kw})
		}
		if strings.Contains(description, kw) {
			score += descriptionRelevance
			result.Matches = append(result.Matches, models.SearchMatch{Field: "description", Keyword: kw})
		}
	}

	result.Score = math.Min(score/float64(len(keywords)), 1)
	return result
}

func anyContains(values []string, sub string) bool {
	for _, v := range values {
		if strings.Contains(v, sub) {
			return true
		}
	}
	return false
}
