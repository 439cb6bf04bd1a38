// internal/models/skills.go
package models

import (
	"bytes"
	"encoding/json"
)

type SkillsKind int

const (
	SkillsAbsent SkillsKind = iota
	SkillsList
	SkillsText
)

// SkillsField holds a project's required skills exactly as stored: absent,
// a list of titles, or a single text value (JSON-encoded or comma-separated).
type SkillsField struct {
	Kind SkillsKind
	List []string
	Text string
}

func SkillsFromList(titles ...string) SkillsField {
	return SkillsField{Kind: SkillsList, List: titles}
}

func SkillsFromText(text string) SkillsField {
	return SkillsField{Kind: SkillsText, Text: text}
}

func (f SkillsField) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case SkillsList:
		if f.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.List)
	case SkillsText:
		return json.Marshal(f.Text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts an array of strings, a string, or null. Any other
// JSON value is kept verbatim as text so the normalizer can flag it.
func (f *SkillsField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = SkillsField{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err == nil {
			*f = SkillsFromList(list...)
			return nil
		}
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*f = SkillsFromText(text)
		return nil
	}

	*f = SkillsFromText(string(trimmed))
	return nil
}
