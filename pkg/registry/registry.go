package registry

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/busfleet/busfleet/pkg/catalog"
	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Registry tracks the current state of every bus. It is the durable source
// of truth for last known positions; the realtime broadcast is advisory.
type Registry struct {
	DB      *database.Instance
	Catalog *catalog.Catalog
	Events  ServiceEventRecorder
}

// ServiceEventRecorder receives service lifecycle events for analytics.
// Implementations must not block the request path.
type ServiceEventRecorder interface {
	RecordServiceEvent(eventType string, bus *fleet.Bus)
}

type StartServiceInput struct {
	BusNumber          string `json:"busNumber"`
	RouteNumber        string `json:"routeNumber"`
	OperatingCity      string `json:"operatingCity"`
	SourceCity         string `json:"sourceCity"`
	DestinationCity    string `json:"destinationCity"`
	ScheduledDeparture string `json:"scheduledDeparture"`
}

// Validate checks the declared trip against the driver's route-type
// capability before any state is touched.
func (input *StartServiceInput) Validate(driver *fleet.Driver) error {
	if input.BusNumber == "" && driver.BusNumber == "" {
		return fleet.NewValidationError("Bus number is required")
	}

	routeType := effectiveRouteType(driver, input)

	switch routeType {
	case fleet.RouteTypeExpress:
		if input.SourceCity == "" || input.DestinationCity == "" {
			return fleet.NewValidationError("Source and destination cities are required for express buses")
		}
	case fleet.RouteTypeCity:
		if input.RouteNumber == "" {
			return fleet.NewValidationError("Route number is required for city buses")
		}
	}

	return nil
}

// effectiveRouteType resolves a "both" capability driver to the service type
// implied by the declared trip.
func effectiveRouteType(driver *fleet.Driver, input *StartServiceInput) string {
	if driver.RouteType != fleet.RouteTypeBoth {
		return driver.RouteType
	}

	if input.SourceCity != "" && input.DestinationCity != "" {
		return fleet.RouteTypeExpress
	}

	return fleet.RouteTypeCity
}

// StartService creates an active bus record for the driver. At most one
// active record per driver is allowed; the check-then-insert race is
// accepted, one device per driver in practice.
func (registry *Registry) StartService(ctx context.Context, driver *fleet.Driver, input *StartServiceInput) (*fleet.Bus, error) {
	if err := input.Validate(driver); err != nil {
		return nil, err
	}

	busesCollection := registry.DB.GetCollection("buses")

	var existingActive fleet.Bus
	err := busesCollection.FindOne(ctx, bson.M{
		"driverid": driver.ID,
		"status":   fleet.BusStatusActive,
	}).Decode(&existingActive)

	if err == nil {
		return nil, fleet.ErrActiveServiceExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	routeType := effectiveRouteType(driver, input)

	busNumber := strings.ToUpper(input.BusNumber)
	if busNumber == "" {
		busNumber = driver.BusNumber
	}

	now := time.Now()
	bus := &fleet.Bus{
		BusNumber:          busNumber,
		RouteType:          routeType,
		DriverID:           driver.ID,
		Status:             fleet.BusStatusActive,
		StartedAt:          &now,
		LastUpdated:        now,
		ScheduledDeparture: input.ScheduledDeparture,
	}

	if routeType == fleet.RouteTypeCity {
		routeNumber := strings.ToUpper(strings.TrimSpace(input.RouteNumber))

		// The declared route must be resolvable before going live.
		if _, _, err := registry.Catalog.GetRouteStops(ctx, routeNumber); err != nil {
			return nil, err
		}

		bus.RouteNumber = routeNumber
		bus.OperatingCity = input.OperatingCity
		if bus.OperatingCity == "" {
			bus.OperatingCity = driver.HomeCity
		}
	} else {
		bus.SourceCity = input.SourceCity
		bus.DestinationCity = input.DestinationCity
	}

	insertResult, err := busesCollection.InsertOne(ctx, bus)
	if err != nil {
		return nil, err
	}

	busesCollection.FindOne(ctx, bson.M{"_id": insertResult.InsertedID}).Decode(&bus)

	if registry.Events != nil {
		registry.Events.RecordServiceEvent("service-started", bus)
	}

	return bus, nil
}

// StopService transitions the driver's active bus to inactive, preserving
// the record for history.
func (registry *Registry) StopService(ctx context.Context, driver *fleet.Driver) (*fleet.Bus, error) {
	busesCollection := registry.DB.GetCollection("buses")

	var bus fleet.Bus
	err := busesCollection.FindOne(ctx, bson.M{
		"driverid": driver.ID,
		"status":   fleet.BusStatusActive,
	}).Decode(&bus)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fleet.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = busesCollection.UpdateOne(ctx, bson.M{"_id": bus.ID}, bson.M{
		"$set": bson.M{
			"status":  fleet.BusStatusInactive,
			"endedat": now,
		},
	})
	if err != nil {
		return nil, err
	}

	bus.Status = fleet.BusStatusInactive
	bus.EndedAt = &now

	if registry.Events != nil {
		registry.Events.RecordServiceEvent("service-stopped", &bus)
	}

	return &bus, nil
}

// ActiveForDriver returns the driver's active bus, or nil when the driver is
// not currently in service (which is not an error).
func (registry *Registry) ActiveForDriver(ctx context.Context, driverID primitive.ObjectID) (*fleet.Bus, error) {
	busesCollection := registry.DB.GetCollection("buses")

	var bus fleet.Bus
	err := busesCollection.FindOne(ctx, bson.M{
		"driverid": driverID,
		"status":   fleet.BusStatusActive,
	}).Decode(&bus)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &bus, nil
}

// ActiveBuses returns every active bus that has reported a position.
func (registry *Registry) ActiveBuses(ctx context.Context) ([]fleet.Bus, error) {
	busesCollection := registry.DB.GetCollection("buses")

	cursor, err := busesCollection.Find(ctx, bson.M{
		"status":              fleet.BusStatusActive,
		"currentlocation":     bson.M{"$ne": nil},
		"currentlocation.lat": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, err
	}

	buses := []fleet.Bus{}
	for cursor.Next(ctx) {
		var bus fleet.Bus
		if err := cursor.Decode(&bus); err != nil {
			log.Error().Err(err).Msg("Failed to decode Bus")
			continue
		}

		buses = append(buses, bus)
	}

	return buses, nil
}

// ActiveOnRoute returns active buses serving the given route number.
func (registry *Registry) ActiveOnRoute(ctx context.Context, routeNumber string) ([]fleet.Bus, error) {
	routeNumber = strings.ToUpper(strings.TrimSpace(routeNumber))

	busesCollection := registry.DB.GetCollection("buses")
	cursor, err := busesCollection.Find(ctx, bson.M{
		"status":      fleet.BusStatusActive,
		"routenumber": routeNumber,
	})
	if err != nil {
		return nil, err
	}

	buses := []fleet.Bus{}
	for cursor.Next(ctx) {
		var bus fleet.Bus
		if err := cursor.Decode(&bus); err != nil {
			log.Error().Err(err).Msg("Failed to decode Bus")
			continue
		}

		buses = append(buses, bus)
	}

	return buses, nil
}

// Search finds active buses matching from/to place names against express
// source/destination or operating city/route fields.
func (registry *Registry) Search(ctx context.Context, from string, to string) ([]fleet.Bus, error) {
	filter := bson.M{"status": fleet.BusStatusActive}

	var conditions bson.A
	if from != "" {
		fromRegex := bson.M{"$regex": regexp.QuoteMeta(from), "$options": "i"}
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"sourcecity": fromRegex},
			bson.M{"operatingcity": fromRegex},
		}})
	}
	if to != "" {
		toRegex := bson.M{"$regex": regexp.QuoteMeta(to), "$options": "i"}
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"destinationcity": toRegex},
			bson.M{"routenumber": toRegex},
		}})
	}

	if len(conditions) > 0 {
		filter["$and"] = conditions
	}

	busesCollection := registry.DB.GetCollection("buses")
	cursor, err := busesCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	buses := []fleet.Bus{}
	for cursor.Next(ctx) {
		var bus fleet.Bus
		if err := cursor.Decode(&bus); err != nil {
			continue
		}

		buses = append(buses, bus)
	}

	return buses, nil
}
