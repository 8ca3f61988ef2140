package history

import (
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/rs/zerolog/log"
)

// Publisher enqueues accepted position updates for the archiver. Publishing
// is off the write path's critical section; a failed enqueue only loses a
// history sample, never the live position.
type Publisher struct {
	queue rmq.Queue
}

func NewPublisher(queueConnection rmq.Connection) (*Publisher, error) {
	queue, err := queueConnection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &Publisher{queue: queue}, nil
}

func (publisher *Publisher) PublishPosition(bus *fleet.Bus) {
	if bus.CurrentLocation == nil {
		return
	}

	event := PositionEvent{
		BusID:      bus.ID,
		BusNumber:  bus.BusNumber,
		Lat:        bus.CurrentLocation.Lat,
		Lng:        bus.CurrentLocation.Lng,
		Heading:    bus.Heading,
		Speed:      bus.Speed,
		RecordedAt: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal position event")
		return
	}

	if err := publisher.queue.PublishBytes(payload); err != nil {
		log.Error().Err(err).Str("bus", event.BusNumber).Msg("Failed to queue position event")
	}
}
