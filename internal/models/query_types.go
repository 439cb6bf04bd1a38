// internal/models/query_types.go
package models

type RankingRegime string

const (
	RegimeDiscovery RankingRegime = "discovery"
	RegimeSearch    RankingRegime = "search"
)

const (
	AlgorithmSkillMatch       = "skill-match-v2"
	AlgorithmSkillMatchSearch = "skill-match-v2-search"
	AlgorithmUserMatch        = "user-match-v1"
)

const (
	MessageNoProjects      = "No projects available"
	MessageNoSearchResults = "No projects match your search query"
	MessageNoProjectSkills = "No skills specified for project"
)
