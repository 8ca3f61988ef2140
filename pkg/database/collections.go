package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (instance *Instance) createIndexes() {
	instance.createStopsIndexes()
	instance.createRoutesIndexes()
	instance.createBusesIndexes()
	instance.createDriversIndexes()
	instance.createPositionHistoryIndexes()
}

func (instance *Instance) createStopsIndexes() {
	stopsCollection := instance.GetCollection("stops")
	stopsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
				{Key: "city", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "routes", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stopsCollection.Indexes().CreateMany(context.Background(), stopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func (instance *Instance) createRoutesIndexes() {
	routesCollection := instance.GetCollection("routes")
	routesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routenumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "city", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := routesCollection.Indexes().CreateMany(context.Background(), routesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func (instance *Instance) createBusesIndexes() {
	busesCollection := instance.GetCollection("buses")
	busesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "driverid", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "routenumber", Value: 1},
				{Key: "status", Value: 1},
			},
		},
	}

	opts := options.CreateIndexes()
	_, err := busesCollection.Indexes().CreateMany(context.Background(), busesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func (instance *Instance) createDriversIndexes() {
	driversCollection := instance.GetCollection("drivers")
	driversIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "licensenumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := driversCollection.Indexes().CreateMany(context.Background(), driversIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func (instance *Instance) createPositionHistoryIndexes() {
	positionHistoryCollection := instance.GetCollection("position_history")
	_, err := positionHistoryCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "busid", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "recordedat", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7 * 24 * 3600), // Expire after 7 days
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
