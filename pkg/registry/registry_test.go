package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ContainsMatchingActivities(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	for _, taskType := range []string{"rank-projects-for-user", "rank-users-for-project", "explain-project-match"} {
		activity, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, activity.InputSchema)
		assert.Contains(t, activity.ErrorCodes, "CORPUS_UNAVAILABLE")
	}

	_, ok := reg.Find("unknown-task")
	assert.False(t, ok)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"9","activities":[{"taskType":"x"}]}`), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "9", reg.Version)
	_, ok := reg.Find("x")
	assert.True(t, ok)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Parse([]byte("{"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	assert.NoError(t, reg.Validate())

	tests := []struct {
		name string
		reg  *ActivityRegistry
		want string
	}{
		{"empty", &ActivityRegistry{}, "no activities"},
		{"missing id", &ActivityRegistry{Activities: []Activity{{DisplayName: "x", TaskType: "x"}}}, "ID"},
		{"duplicate task type", &ActivityRegistry{Activities: []Activity{
			{ID: "a", DisplayName: "A", TaskType: "t"},
			{ID: "b", DisplayName: "B", TaskType: "t"},
		}}, "duplicate task type"},
		{"bad timeout", &ActivityRegistry{Activities: []Activity{
			{ID: "a", DisplayName: "A", TaskType: "t", Timeout: "thirty seconds"},
		}}, "invalid timeout"},
		{"bad schema", &ActivityRegistry{Activities: []Activity{
			{ID: "a", DisplayName: "A", TaskType: "t", InputSchema: map[string]interface{}{"type": 42}},
		}}, "invalid inputSchema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestActivity_Helpers(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	activity, ok := reg.Find("explain-project-match")
	require.True(t, ok)

	timeout, err := activity.TimeoutDuration()
	require.NoError(t, err)
	assert.Positive(t, timeout)
	assert.True(t, activity.DeclaresErrorCode("PROJECT_NOT_FOUND"))
	assert.False(t, activity.DeclaresErrorCode("AUTH_FAILED"))

	zero, err := (&Activity{}).TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, zero)
}
