package validation

import (
	"fmt"
	"sort"
	"strings"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput checks input against a JSON schema held as a Go map.
func ValidateInput(input map[string]interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(input))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	sort.SliceStable(vr.Errors, func(i, j int) bool { return vr.Errors[i].Field < vr.Errors[j].Field })
	return vr, nil
}

// ValidateActivityInput validates job variables against the input schema
// registered for taskType. Violations become INVALID_MATCH_REQUEST.
func ValidateActivityInput(reg *registry.ActivityRegistry, taskType string, input map[string]interface{}) error {
	activity, ok := reg.Find(taskType)
	if !ok {
		return errors.NewInternalError(fmt.Errorf("no activity registered for task type %q", taskType))
	}

	result, err := ValidateInput(input, activity.InputSchema)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !result.Valid {
		return errors.NewInvalidMatchRequestError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
