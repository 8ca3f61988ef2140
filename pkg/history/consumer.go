package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const numConsumers = 2
const batchSize = 200

// StartConsumers runs the background archive consumers that drain the
// position event queue into the TTL'd position_history collection.
func StartConsumers(redis *redis_client.Instance, db *database.Instance) error {
	log.Info().Msg("Starting position history consumers")

	queue, err := redis.QueueConnection.OpenQueue(QueueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(numConsumers*batchSize, 1*time.Second); err != nil {
		return err
	}

	for i := 0; i < numConsumers; i++ {
		log.Info().Msgf("Starting position history consumer %d", i)

		if _, err := queue.AddBatchConsumer(fmt.Sprintf("%s-%d", QueueName, i), batchSize, 2*time.Second, NewBatchConsumer(db)); err != nil {
			return err
		}
	}

	return nil
}

type BatchConsumer struct {
	db *database.Instance
}

func NewBatchConsumer(db *database.Instance) *BatchConsumer {
	return &BatchConsumer{db: db}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	var archiveOperations []mongo.WriteModel

	for _, payload := range payloads {
		var positionEvent *PositionEvent
		if err := json.Unmarshal([]byte(payload), &positionEvent); err != nil {
			log.Error().Err(err).Msg("Failed to decode position event")
			continue
		}

		insertModel := mongo.NewInsertOneModel()
		insertModel.SetDocument(positionEvent)

		archiveOperations = append(archiveOperations, insertModel)
	}

	if len(archiveOperations) > 0 {
		positionHistoryCollection := consumer.db.GetCollection("position_history")

		startTime := time.Now()
		_, err := positionHistoryCollection.BulkWrite(context.Background(), archiveOperations, &options.BulkWriteOptions{})
		log.Info().Int("Length", len(archiveOperations)).Str("Time", time.Since(startTime).String()).Msg("Bulk write position history")

		if err != nil {
			log.Error().Err(err).Msg("Failed to bulk write position history")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack position event")
		}
	}
}
