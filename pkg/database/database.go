package database

import (
	"context"
	"time"

	"github.com/busfleet/busfleet/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Instance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(cfg *config.Config) (*Instance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoConnectionString))
	if err != nil {
		return nil, err
	}

	instance := &Instance{
		Client:   client,
		Database: client.Database(cfg.MongoDatabase),
	}

	err = client.Ping(context.Background(), nil)
	if err != nil {
		return nil, err
	}

	instance.createIndexes()

	return instance, nil
}

func (instance *Instance) GetCollection(collectionName string) *mongo.Collection {
	return instance.Database.Collection(collectionName)
}
