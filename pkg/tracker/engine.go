package tracker

import (
	"context"

	"github.com/busfleet/busfleet/pkg/catalog"
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/registry"
	"github.com/sourcegraph/conc/pool"
)

const maxProgressGoroutines = 16

// Engine computes the live route progress view: every active bus on a route
// mapped onto the route's stop sequence with a discrete status, aggregated
// into an ordered queue. Everything is recomputed per query from the latest
// persisted snapshots.
type Engine struct {
	Catalog  *catalog.Catalog
	Registry *registry.Registry
}

type LiveStatus struct {
	Route *fleet.Route         `json:"route" groups:"basic"`
	Stops []fleet.ResolvedStop `json:"stops" groups:"basic"`

	ActiveBuses []fleet.ProgressRecord `json:"activeBuses" groups:"basic"`
	Count       int                    `json:"count" groups:"basic"`
	QueueCount  int                    `json:"queueCount" groups:"basic"`
}

// GetLiveStatus resolves the route's stop sequence and derives a progress
// record for each active bus. A route with no active buses is a valid,
// successful result; only an unresolvable route number is an error.
func (engine *Engine) GetLiveStatus(ctx context.Context, routeNumber string) (*LiveStatus, error) {
	route, routeStops, err := engine.Catalog.GetRouteStops(ctx, routeNumber)
	if err != nil {
		return nil, err
	}

	activeBuses, err := engine.Registry.ActiveOnRoute(ctx, routeNumber)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[fleet.ProgressRecord]()
	p.WithMaxGoroutines(maxProgressGoroutines)

	for _, bus := range activeBuses {
		p.Go(func() fleet.ProgressRecord {
			return buildProgressRecord(bus, routeStops)
		})
	}

	records := p.Wait()

	sortQueue(records)

	return &LiveStatus{
		Route:       route,
		Stops:       routeStops,
		ActiveBuses: records,
		Count:       len(records),
		QueueCount:  queueCount(records),
	}, nil
}
