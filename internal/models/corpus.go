// internal/models/corpus.go
package models

import "time"

// IDFMap maps a normalized skill title to its inverse document frequency.
type IDFMap map[string]float64

// Weight returns the IDF for skill, or 1.0 when the skill is unknown.
func (m IDFMap) Weight(skill string) float64 {
	if w, ok := m[skill]; ok {
		return w
	}
	return 1.0
}

type SkillStat struct {
	Title     string `json:"title"`
	UserCount int    `json:"userCount"`
}

// CorpusSnapshot is a consistent read of every user and project taken at
// the start of a request. IDF, when non-nil, is used as-is.
type CorpusSnapshot struct {
	Users       []User      `json:"users"`
	Projects    []Project   `json:"projects"`
	SkillCorpus []SkillStat `json:"skillCorpus,omitempty"`
	TotalUsers  int         `json:"totalUsers"`
	IDF         IDFMap      `json:"idf,omitempty"`
	TakenAt     time.Time   `json:"takenAt"`
}

func (s *CorpusSnapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s *CorpusSnapshot) FindProject(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
