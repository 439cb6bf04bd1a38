package main

import (
	"os"
	"path/filepath"
	"testing"

	"skill-match-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyDefaultRegistry(t *testing.T) string {
	t.Helper()
	reg, err := registry.Default()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, saveRegistry(reg, path))
	return path
}

func TestUpdateActivity(t *testing.T) {
	path := copyDefaultRegistry(t)

	require.NoError(t, updateActivity(path, "rank-projects-for-user", "timeout", "45s"))
	require.NoError(t, updateActivity(path, "rank-projects-for-user", "retries", "5"))

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	activity, ok := reg.Find("rank-projects-for-user")
	require.True(t, ok)
	assert.Equal(t, "45s", activity.Timeout)
	assert.Equal(t, 5, activity.Retries)
}

func TestUpdateActivity_Errors(t *testing.T) {
	path := copyDefaultRegistry(t)

	assert.Error(t, updateActivity(path, "missing-task", "timeout", "1s"))
	assert.Error(t, updateActivity(path, "rank-projects-for-user", "timeout", "soon"))
	assert.Error(t, updateActivity(path, "rank-projects-for-user", "retries", "many"))
	assert.Error(t, updateActivity(path, "rank-projects-for-user", "colour", "blue"))
	assert.Error(t, updateActivity(filepath.Join(t.TempDir(), "none.json"), "x", "status", "y"))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
