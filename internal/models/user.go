// internal/models/user.go
package models

type User struct {
	ID        string         `json:"id"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	Skills    []UserSkill    `json:"skills"`
	Interests []UserInterest `json:"interests"`
}

type UserSkill struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Portfolio   string `json:"portfolio,omitempty"`
}

type InterestLevel string

const (
	InterestHigh   InterestLevel = "High"
	InterestMedium InterestLevel = "Medium"
	InterestLow    InterestLevel = "Low"
)

type UserInterest struct {
	Title string        `json:"title"`
	Level InterestLevel `json:"level,omitempty"`
}
