package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/busfleet/busfleet/pkg/database"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/stops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Catalog resolves route numbers into ordered stop sequences, degrading
// gracefully when explicit stop lists are missing: stored list, then
// via-text synthesis, then a virtual route from tagged stops.
type Catalog struct {
	DB        *database.Instance
	Directory *stops.Directory
}

func NewCatalog(db *database.Instance) *Catalog {
	return &Catalog{
		DB:        db,
		Directory: &stops.Directory{DB: db},
	}
}

// GetRoute looks up a route by number, case-insensitively. A store failure
// is returned as-is; only a genuinely missing document is ErrRouteNotFound.
func (catalog *Catalog) GetRoute(ctx context.Context, routeNumber string) (*fleet.Route, error) {
	routeNumber = strings.ToUpper(strings.TrimSpace(routeNumber))

	var route fleet.Route
	routesCollection := catalog.DB.GetCollection("routes")
	err := routesCollection.FindOne(ctx, bson.M{"routenumber": routeNumber}).Decode(&route)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fleet.ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}

	return &route, nil
}

// GetRouteStops returns the ordered, resolved stop sequence for a route.
// Synthesis results are recomputed on every call and never written back.
func (catalog *Catalog) GetRouteStops(ctx context.Context, routeNumber string) (*fleet.Route, []fleet.ResolvedStop, error) {
	routeNumber = strings.ToUpper(strings.TrimSpace(routeNumber))

	route, err := catalog.GetRoute(ctx, routeNumber)
	if err != nil && !errors.Is(err, fleet.ErrRouteNotFound) {
		return nil, nil, err
	}

	if err == nil && len(route.Stops) > 0 {
		resolved, resolveErr := catalog.resolveStoredStops(ctx, route)
		if resolveErr != nil {
			return nil, nil, resolveErr
		}

		return route, resolved, nil
	}

	if err == nil && route.ViaText != "" {
		cityStops, cityErr := catalog.Directory.City(ctx, route.City)
		if cityErr != nil {
			return nil, nil, cityErr
		}

		return route, SynthesizeFromVia(route, cityStops), nil
	}

	// No route record (or a record with neither stops nor via-text) - derive
	// a virtual route from any stops tagged with this number.
	taggedStops, taggedErr := catalog.Directory.TaggedWithRoute(ctx, routeNumber)
	if taggedErr != nil {
		return nil, nil, taggedErr
	}

	if len(taggedStops) == 0 {
		return nil, nil, fleet.ErrRouteNotFound
	}

	virtual := VirtualRoute(taggedStops)

	if route == nil {
		route = &fleet.Route{
			RouteNumber: routeNumber,
			RouteName:   "Route " + routeNumber,
		}
	}

	return route, virtual, nil
}

// resolveStoredStops joins the embedded route-stop bindings against the stop
// documents they reference, preserving stored sequence order.
func (catalog *Catalog) resolveStoredStops(ctx context.Context, route *fleet.Route) ([]fleet.ResolvedStop, error) {
	var stopIDs bson.A
	for _, routeStop := range route.Stops {
		if routeStop.StopID != nil {
			stopIDs = append(stopIDs, *routeStop.StopID)
		}
	}

	stopsByID := map[string]fleet.Stop{}

	if len(stopIDs) > 0 {
		stopsCollection := catalog.DB.GetCollection("stops")
		cursor, err := stopsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": stopIDs}})
		if err != nil {
			return nil, err
		}

		for cursor.Next(ctx) {
			var stop fleet.Stop
			if err := cursor.Decode(&stop); err != nil {
				continue
			}

			stopsByID[stop.ID.Hex()] = stop
		}
	}

	resolved := make([]fleet.ResolvedStop, 0, len(route.Stops))
	for _, routeStop := range route.Stops {
		resolvedStop := fleet.ResolvedStop{
			StopID:                 routeStop.StopID,
			Sequence:               routeStop.Sequence,
			IsMajor:                routeStop.IsMajor,
			EstimatedTimeFromStart: routeStop.EstimatedTimeFromStart,
		}

		if routeStop.StopID != nil {
			if stop, found := stopsByID[routeStop.StopID.Hex()]; found {
				resolvedStop.Name = stop.Name
				resolvedStop.Location = stop.Location
			}
		}

		resolved = append(resolved, resolvedStop)
	}

	return resolved, nil
}
