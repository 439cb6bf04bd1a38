package corpus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeElasticsearch(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchProjectSource_LoadProjects(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	client := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{
			"hits": {"hits": [
				{"_id": "doc-1", "_source": {"id": "p1", "title": "API", "skills": ["Go", "SQL"], "authorId": "u1"}},
				{"_id": "doc-2", "_source": {"title": "Site", "skills": "react, css", "authorId": "u2",
					"stats": {"views": 4, "likes": 1}}},
				{"_id": "doc-3", "_source": {"title": "Broken", "authorId": 42}}
			]}
		}`))
	})

	source := NewElasticsearchProjectSource(client, "projects", logger.NewTestLogger(t))
	projects, err := source.LoadProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/projects/_search", gotPath)
	assert.Contains(t, gotBody, "query")

	require.Len(t, projects, 2)
	assert.Equal(t, "p1", projects[0].ID)
	assert.Equal(t, models.SkillsFromList("Go", "SQL"), projects[0].Skills)
	assert.Equal(t, "doc-2", projects[1].ID)
	assert.Equal(t, models.SkillsFromText("react, css"), projects[1].Skills)
	assert.Equal(t, &models.ProjectStats{Views: 4, Likes: 1}, projects[1].Stats)
}

func TestElasticsearchProjectSource_ErrorStatus(t *testing.T) {
	client := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	source := NewElasticsearchProjectSource(client, "projects", logger.NewTestLogger(t))
	projects, err := source.LoadProjects(context.Background())
	assert.Nil(t, projects)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCorpusUnavailable)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "elasticsearch", stdErr.Metadata["source"])
}

func TestElasticsearchProjectSource_EmptyIndex(t *testing.T) {
	client := newFakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
	})

	source := NewElasticsearchProjectSource(client, "projects", logger.NewTestLogger(t))
	projects, err := source.LoadProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}
