package registry

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks that every activity has an ID, a display name, a unique
// task type and a parseable timeout, and that its schemas compile.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for i := range r.Activities {
		a := &r.Activities[i]
		if a.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		taskTypes[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			return err
		}

		for name, schema := range map[string]map[string]interface{}{"inputSchema": a.InputSchema, "outputSchema": a.OutputSchema} {
			if len(schema) == 0 {
				continue
			}
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema)); err != nil {
				return fmt.Errorf("activity %s has an invalid %s: %w", a.ID, name, err)
			}
		}
	}
	return nil
}
