package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// DefaultSearchSize is the default Elasticsearch result window.
const DefaultSearchSize = 10000

type ElasticsearchProjectSource struct {
	client *elasticsearch.Client
	index  string
	size   int
	logger logger.Logger
}

func NewElasticsearchProjectSource(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchProjectSource {
	return &ElasticsearchProjectSource{
		client: client,
		index:  index,
		size:   DefaultSearchSize,
		logger: log.WithFields(map[string]interface{}{"component": "corpus-elasticsearch", "index": index}),
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchProjectSource) LoadProjects(ctx context.Context) ([]models.Project, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc", "unmapped_type": "date"}}},
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	from := 0
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &s.size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewCorpusUnavailableError("elasticsearch", fmt.Errorf("search %s: %w", s.index, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewCorpusUnavailableError("elasticsearch", fmt.Errorf("search %s: %s", s.index, res.Status()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewCorpusUnavailableError("elasticsearch", fmt.Errorf("decode response: %w", err))
	}

	projects := make([]models.Project, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		var p models.Project
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			s.logger.Warn("Skipping undecodable project document", map[string]interface{}{
				"documentId": hit.ID,
				"error":      err.Error(),
			})
			continue
		}
		if p.ID == "" {
			p.ID = hit.ID
		}
		projects = append(projects, p)
	}

	s.logger.Debug("Projects loaded", map[string]interface{}{"count": len(projects)})
	return projects, nil
}
