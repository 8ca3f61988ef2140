package elastic_client

import (
	"context"
	"io"
	"time"

	"github.com/busfleet/busfleet/pkg/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
)

// Client indexes analytics events (service start/stop) in the background.
// When no Elasticsearch address is configured the client is a no-op, so
// callers never have to check whether indexing is enabled.
type Client struct {
	elasticsearch *elasticsearch.Client
	bulkIndexer   esutil.BulkIndexer
}

func Connect(cfg *config.Config, required bool) (*Client, error) {
	if cfg.ElasticsearchAddress == "" && !required {
		log.Info().Msg("Skipping Elasticsearch setup")
		return &Client{}, nil
	} else if cfg.ElasticsearchAddress == "" && required {
		log.Fatal().Msg("Elasticsearch configuration not set")
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchAddress},
		Username:  cfg.ElasticsearchUsername,
		Password:  cfg.ElasticsearchPassword,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return nil, err
	}

	_, err = es.Info()
	if err != nil {
		return nil, err
	}

	bulkIndexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: 15 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("Elasticsearch client setup for %s", cfg.ElasticsearchAddress)

	return &Client{
		elasticsearch: es,
		bulkIndexer:   bulkIndexer,
	}, nil
}

func (client *Client) IndexRequest(indexName string, document io.ReadSeeker) {
	if client.elasticsearch == nil {
		return
	}

	client.bulkIndexer.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Index:  indexName,
			Action: "index",
			Body:   document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
}

func (client *Client) WaitUntilQueueEmpty() {
	if client.bulkIndexer == nil {
		return
	}

	client.bulkIndexer.Close(context.Background())
}
