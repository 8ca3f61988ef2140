package tracker

import (
	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/geo"
	"github.com/jinzhu/copier"
)

const atStationThresholdMetres = 50
const arrivingThresholdMetres = 300

// nearestStop scans every route-stop with resolved coordinates and returns
// the sequence of the closest one plus the distance to it. Placeholders
// without coordinates are skipped. A nil distance means the bus has no
// position or no stop on the route is resolvable - distinct from being 0 m
// from a stop.
func nearestStop(position *fleet.Coordinates, routeStops []fleet.ResolvedStop) (int, *float64) {
	if position == nil {
		return 0, nil
	}

	nearestSequence := 0
	var nearestDistance *float64

	for _, routeStop := range routeStops {
		if !routeStop.Location.Valid() {
			continue
		}

		distance := geo.Distance(position.Lat, position.Lng, routeStop.Location.Latitude(), routeStop.Location.Longitude())

		if nearestDistance == nil || distance < *nearestDistance {
			d := distance
			nearestDistance = &d
			nearestSequence = routeStop.Sequence
		}
	}

	return nearestSequence, nearestDistance
}

// nextSequence returns the sequence following nearest, or 0 when nearest is
// the last stop of the route.
func nextSequence(nearest int, routeStops []fleet.ResolvedStop) int {
	for _, routeStop := range routeStops {
		if routeStop.Sequence == nearest+1 {
			return routeStop.Sequence
		}
	}

	return 0
}

// inferStatus applies the ordered status rules. Proximity always wins over
// direction of travel: a bus close to any stop reports at-station/arriving
// even when it has already passed that stop (loops).
func inferStatus(distance *float64, nearestSequence int) string {
	if distance != nil && *distance < atStationThresholdMetres {
		return fleet.ProgressStatusAtStation
	}
	if distance != nil && *distance < arrivingThresholdMetres {
		return fleet.ProgressStatusArriving
	}
	if nearestSequence > 1 {
		return fleet.ProgressStatusDeparted
	}

	return fleet.ProgressStatusInTransit
}

// buildProgressRecord derives the live tracking record for one active bus
// against the route's resolved stop sequence.
func buildProgressRecord(bus fleet.Bus, routeStops []fleet.ResolvedStop) fleet.ProgressRecord {
	record := fleet.ProgressRecord{}
	copier.Copy(&record, &bus)

	if bus.CurrentLocation != nil {
		record.Lat = bus.CurrentLocation.Lat
		record.Lng = bus.CurrentLocation.Lng
	}

	record.StartLocation = bus.SourceCity
	record.EndLocation = bus.DestinationCity

	nearest, distance := nearestStop(bus.CurrentLocation, routeStops)

	record.Status = inferStatus(distance, nearest)

	if nearest == 0 {
		nearest = 1
	}
	record.LastStopSequence = nearest

	next := nextSequence(nearest, routeStops)
	if next == 0 {
		next = 2
	}
	record.NextStopSequence = next

	// Unknown distances collapse to 0 on the wire; see the design notes on
	// the inherited sentinel.
	if distance != nil {
		record.DistanceToStop = *distance
	}

	return record
}
