// internal/models/project.go
package models

import "time"

type Project struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Skills      SkillsField     `json:"skills"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	Stats       *ProjectStats   `json:"stats,omitempty"`
	AuthorID    string          `json:"authorId"`
	AuthorName  string          `json:"authorName,omitempty"`
	AuthorEmail string          `json:"authorEmail,omitempty"`
	Members     []ProjectMember `json:"members,omitempty"`
}

type ProjectStats struct {
	Views int `json:"views"`
	Likes int `json:"likes"`
}

type ProjectMember struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// HasMember reports whether userID authored or belongs to the project.
func (p Project) HasMember(userID string) bool {
	if p.AuthorID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
