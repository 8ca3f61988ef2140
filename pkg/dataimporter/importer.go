package dataimporter

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/stops"
	"github.com/busfleet/busfleet/pkg/util"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

type Importer struct {
	DB *database.Instance
}

// ImportStops seeds the stop directory from a CSV file. Existing stops are
// updated in place; their route sets only grow.
func (importer *Importer) ImportStops(ctx context.Context, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var records []StopRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return err
	}

	directory := &stops.Directory{DB: importer.DB}

	imported := 0
	for _, record := range records {
		routes := strings.Split(record.Routes, ";")
		for i, route := range routes {
			routes[i] = strings.ToUpper(strings.TrimSpace(route))
		}
		routes = util.RemoveDuplicateStrings(routes, []string{})
		if routes == nil {
			routes = []string{}
		}

		stop := &fleet.Stop{
			Name:     strings.TrimSpace(record.Name),
			City:     strings.TrimSpace(record.City),
			Landmark: strings.TrimSpace(record.Landmark),
			Location: fleet.NewLocation(record.Lat, record.Lng),
			Routes:   routes,
		}

		if stop.Name == "" {
			continue
		}

		if err := directory.Upsert(ctx, stop); err != nil {
			log.Error().Err(err).Str("stop", stop.Name).Msg("Failed to upsert stop")
			continue
		}

		imported++
	}

	log.Info().Int("imported", imported).Str("file", filename).Msg("Imported stops")

	return nil
}

// ImportRoutes seeds the route catalog from a YAML file. Stop references are
// resolved by name within the route's city; unresolved names are kept as
// unbound route-stops so synthesis can still place them later.
func (importer *Importer) ImportRoutes(ctx context.Context, filename string) error {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var definitions []RouteDefinition
	if err := yaml.Unmarshal(contents, &definitions); err != nil {
		return err
	}

	directory := &stops.Directory{DB: importer.DB}
	routesCollection := importer.DB.GetCollection("routes")

	for _, definition := range definitions {
		routeNumber := strings.ToUpper(strings.TrimSpace(definition.RouteNumber))
		if routeNumber == "" {
			continue
		}

		cityStops, err := directory.City(ctx, definition.City)
		if err != nil {
			return err
		}

		stopsByName := map[string]fleet.Stop{}
		for _, stop := range cityStops {
			stopsByName[strings.ToLower(stop.Name)] = stop
		}

		routeStops := []fleet.RouteStop{}
		for _, stopDefinition := range definition.Stops {
			routeStop := fleet.RouteStop{
				Sequence:               stopDefinition.Sequence,
				IsMajor:                stopDefinition.IsMajor,
				EstimatedTimeFromStart: stopDefinition.EstimatedTimeFromStart,
			}

			if stop, found := stopsByName[strings.ToLower(stopDefinition.Name)]; found {
				stopID := stop.ID
				routeStop.StopID = &stopID
			} else {
				log.Warn().Str("route", routeNumber).Str("stop", stopDefinition.Name).Msg("Route stop not registered in directory")
			}

			routeStops = append(routeStops, routeStop)
		}

		now := time.Now()
		update := bson.M{
			"$set": bson.M{
				"routenumber":          routeNumber,
				"routename":            definition.RouteName,
				"city":                 definition.City,
				"from":                 definition.From,
				"to":                   definition.To,
				"viatext":              definition.ViaText,
				"notes":                definition.Notes,
				"stops":                routeStops,
				"modificationdatetime": now,
			},
			"$setOnInsert": bson.M{"creationdatetime": now},
		}

		opts := options.Update().SetUpsert(true)
		if _, err := routesCollection.UpdateOne(ctx, bson.M{"routenumber": routeNumber}, update, opts); err != nil {
			log.Error().Err(err).Str("route", routeNumber).Msg("Failed to upsert route")
		}
	}

	log.Info().Int("routes", len(definitions)).Str("file", filename).Msg("Imported routes")

	return nil
}
