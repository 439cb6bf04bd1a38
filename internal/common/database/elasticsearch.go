package database

import (
	"context"
	"fmt"
	"net/http"

	"skill-match-workers/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticsearchClient serves the project pool when projects are indexed in
// Elasticsearch instead of read from Postgres.
type ElasticsearchClient struct {
	Client *elasticsearch.Client
	index  string
}

// OpenElasticsearch connects and checks that the project index exists.
func OpenElasticsearch(ctx context.Context, cfg config.ElasticsearchConfig, index string) (*ElasticsearchClient, error) {
	addresses := cfg.GetAddresses()
	if len(addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch address is not configured")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:  addresses,
		Username:   cfg.Username,
		Password:   cfg.Password,
		MaxRetries: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{Client: es, index: index}
	if err := client.Ping(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *ElasticsearchClient) Index() string {
	return c.index
}

// Ping reports an error when the cluster is unreachable or the project
// index is missing.
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	res, err := c.Client.Indices.Exists([]string{c.index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("elasticsearch index %q does not exist", c.index)
	case res.IsError():
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}
