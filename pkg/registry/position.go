package registry

import (
	"context"
	"errors"
	"time"

	"github.com/busfleet/busfleet/pkg/fleet"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PositionUpdateInput struct {
	BusID   string   `json:"busId"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Heading float64  `json:"heading"`
	Speed   float64  `json:"speed"`
}

func (input *PositionUpdateInput) Validate() error {
	if input.BusID == "" || input.Lat == nil || input.Lng == nil {
		return fleet.NewValidationError("busId, lat and lng are required")
	}

	if *input.Lat < -90 || *input.Lat > 90 || *input.Lng < -180 || *input.Lng > 180 {
		return fleet.NewValidationError("Coordinates are out of range")
	}

	return nil
}

// UpdatePosition applies a position report to the bus record. Updates are
// applied in receipt order, last write wins; no sequence numbers are
// enforced.
func (registry *Registry) UpdatePosition(ctx context.Context, input *PositionUpdateInput) (*fleet.Bus, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	busID, err := primitive.ObjectIDFromHex(input.BusID)
	if err != nil {
		return nil, fleet.ErrVehicleNotFound
	}

	busesCollection := registry.DB.GetCollection("buses")

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"currentlocation": fleet.Coordinates{Lat: *input.Lat, Lng: *input.Lng},
			"heading":         input.Heading,
			"speed":           input.Speed,
			"lastupdated":     now,
		},
	}

	result, err := busesCollection.UpdateOne(ctx, bson.M{"_id": busID}, update)
	if err != nil {
		return nil, err
	}

	if result.MatchedCount == 0 {
		return nil, fleet.ErrVehicleNotFound
	}

	var bus fleet.Bus
	err = busesCollection.FindOne(ctx, bson.M{"_id": busID}).Decode(&bus)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fleet.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	return &bus, nil
}
