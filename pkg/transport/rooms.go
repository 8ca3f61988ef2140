package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Rooms is a room-based publish/subscribe transport keyed by vehicle
// identity, backed by redis pub/sub channels. Delivery is at-most-once with
// no replay; the vehicle registry holds the durable state for catch-up.
type Rooms struct {
	Client *redis.Client
}

// LocationEvent is the payload broadcast to everyone watching a vehicle.
type LocationEvent struct {
	Event string `json:"event"`

	BusID     string  `json:"busId"`
	BusNumber string  `json:"busNumber"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Heading   float64 `json:"heading"`
	Speed     float64 `json:"speed"`

	Timestamp time.Time `json:"timestamp"`
}

func channelFor(busID string) string {
	return fmt.Sprintf("vehicle.%s", busID)
}

// Join subscribes to a vehicle's room. The caller owns the returned PubSub
// and must Leave when done watching.
func (rooms *Rooms) Join(ctx context.Context, busID string) *redis.PubSub {
	return rooms.Client.Subscribe(ctx, channelFor(busID))
}

// Leave closes the subscription, removing the watcher from the room.
func (rooms *Rooms) Leave(pubsub *redis.PubSub) {
	if err := pubsub.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close room subscription")
	}
}

// PublishLocation broadcasts a position update to the vehicle's room.
// Fire-and-forget: subscribers not currently listening simply miss it.
func (rooms *Rooms) PublishLocation(ctx context.Context, bus *fleet.Bus) {
	if bus.CurrentLocation == nil {
		return
	}

	event := LocationEvent{
		Event:     "bus-location-updated",
		BusID:     bus.ID.Hex(),
		BusNumber: bus.BusNumber,
		Lat:       bus.CurrentLocation.Lat,
		Lng:       bus.CurrentLocation.Lng,
		Heading:   bus.Heading,
		Speed:     bus.Speed,
		Timestamp: bus.LastUpdated,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal location event")
		return
	}

	if err := rooms.Client.Publish(ctx, channelFor(event.BusID), payload).Err(); err != nil {
		log.Error().Err(err).Str("bus", event.BusNumber).Msg("Failed to publish location event")
	}
}
