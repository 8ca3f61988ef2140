package stops

import (
	"context"
	"regexp"
	"time"

	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultSearchLimit = 20
const defaultNearRadiusMetres = 1000
const maxNearRadiusMetres = 5000

// Directory is the catalog of registered stops.
type Directory struct {
	DB *database.Instance
}

// Search matches stops by name substring (case-insensitive), optionally
// constrained to a city.
func (directory *Directory) Search(ctx context.Context, query string, city string) ([]fleet.Stop, error) {
	filter := bson.M{}

	if query != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}
	if city != "" {
		filter["city"] = bson.M{"$regex": "^" + regexp.QuoteMeta(city) + "$", "$options": "i"}
	}

	opts := options.Find().SetLimit(defaultSearchLimit)

	stops := []fleet.Stop{}
	stopsCollection := directory.DB.GetCollection("stops")
	cursor, err := stopsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	for cursor.Next(ctx) {
		var stop fleet.Stop
		if err := cursor.Decode(&stop); err != nil {
			log.Error().Err(err).Msg("Failed to decode Stop")
			continue
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

// Near returns stops within radius metres of the given point, nearest first.
func (directory *Directory) Near(ctx context.Context, lat float64, lng float64, radius float64) ([]fleet.Stop, error) {
	if radius <= 0 {
		radius = defaultNearRadiusMetres
	}
	if radius > maxNearRadiusMetres {
		radius = maxNearRadiusMetres
	}

	filter := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": bson.A{lng, lat},
				},
				"$maxDistance": radius,
			},
		},
	}

	stops := []fleet.Stop{}
	stopsCollection := directory.DB.GetCollection("stops")
	cursor, err := stopsCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	for cursor.Next(ctx) {
		var stop fleet.Stop
		if err := cursor.Decode(&stop); err != nil {
			log.Error().Err(err).Msg("Failed to decode Stop")
			continue
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

// City returns every stop registered in a city, used by route synthesis for
// name resolution.
func (directory *Directory) City(ctx context.Context, city string) ([]fleet.Stop, error) {
	filter := bson.M{"city": bson.M{"$regex": "^" + regexp.QuoteMeta(city) + "$", "$options": "i"}}

	stops := []fleet.Stop{}
	stopsCollection := directory.DB.GetCollection("stops")
	cursor, err := stopsCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	for cursor.Next(ctx) {
		var stop fleet.Stop
		if err := cursor.Decode(&stop); err != nil {
			continue
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

// TaggedWithRoute returns stops whose route set contains the route number.
func (directory *Directory) TaggedWithRoute(ctx context.Context, routeNumber string) ([]fleet.Stop, error) {
	stops := []fleet.Stop{}
	stopsCollection := directory.DB.GetCollection("stops")
	cursor, err := stopsCollection.Find(ctx, bson.M{"routes": routeNumber})
	if err != nil {
		return nil, err
	}

	for cursor.Next(ctx) {
		var stop fleet.Stop
		if err := cursor.Decode(&stop); err != nil {
			continue
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

// Upsert creates or updates a stop keyed by (name, city). Existing stops only
// ever grow their route set.
func (directory *Directory) Upsert(ctx context.Context, stop *fleet.Stop) error {
	now := time.Now()
	stopsCollection := directory.DB.GetCollection("stops")

	routes := stop.Routes
	if routes == nil {
		routes = []string{}
	}

	filter := bson.M{"name": stop.Name, "city": stop.City}
	update := bson.M{
		"$set": bson.M{
			"name":                 stop.Name,
			"city":                 stop.City,
			"landmark":             stop.Landmark,
			"location":             stop.Location,
			"modificationdatetime": now,
		},
		"$setOnInsert": bson.M{"creationdatetime": now},
		"$addToSet":    bson.M{"routes": bson.M{"$each": routes}},
	}

	opts := options.Update().SetUpsert(true)
	_, err := stopsCollection.UpdateOne(ctx, filter, update, opts)

	return err
}
