package redis_client

import (
	"context"

	"github.com/adjust/rmq/v5"
	"github.com/busfleet/busfleet/pkg/config"
	"github.com/redis/go-redis/v9"
)

type Instance struct {
	Client          *redis.Client
	QueueConnection rmq.Connection
}

func Connect(cfg *config.Config) (*Instance, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDatabase,
	})

	statusCmd := client.Ping(context.Background())
	err := statusCmd.Err()
	if err != nil {
		return nil, err
	}

	queueConnection, err := rmq.OpenConnectionWithRedisClient("busfleet", client, nil)
	if err != nil {
		return nil, err
	}

	return &Instance{
		Client:          client,
		QueueConnection: queueConnection,
	}, nil
}
