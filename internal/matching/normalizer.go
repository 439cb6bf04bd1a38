package matching

import (
	"encoding/json"
	"strings"

	"skill-match-workers/internal/models"
)

// NormalizeSkills turns a stored skills field into canonical tokens.
// Malformed data yields an empty list.
func NormalizeSkills(field models.SkillsField) []string {
	tokens, _ := ParseSkills(field)
	return tokens
}

// ParseSkills resolves a skills field in order: list, JSON text, comma
// separated text. malformed reports JSON that decoded to something other
// than a list of strings, a string or null.
func ParseSkills(field models.SkillsField) (tokens []string, malformed bool) {
	switch field.Kind {
	case models.SkillsList:
		return NormalizeTokens(field.List), false
	case models.SkillsText:
		return parseSkillsText(field.Text)
	default:
		return []string{}, false
	}
}

func parseSkillsText(text string) ([]string, bool) {
	var decoded interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return NormalizeTokens(strings.Split(text, ",")), false
	}

	switch v := decoded.(type) {
	case nil:
		return []string{}, false
	case string:
		return NormalizeTokens(strings.Split(v, ",")), false
	case []interface{}:
		titles := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return []string{}, true
			}
			titles = append(titles, s)
		}
		return NormalizeTokens(titles), false
	default:
		return []string{}, true
	}
}

// NormalizeToken lowercases and trims a single skill or interest title.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTokens normalizes every title, drops empty ones and keeps the
// first occurrence of duplicates. The result is never nil.
func NormalizeTokens(titles []string) []string {
	out := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		token := NormalizeToken(t)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
