package catalog

import (
	"strings"

	"github.com/busfleet/busfleet/pkg/fleet"
	"golang.org/x/exp/slices"
)

const viaStopIntervalMinutes = 10
const virtualStopIntervalMinutes = 15

// SynthesizeFromVia builds an ordered waypoint list from a route's from/via/to
// text. Names are resolved case-insensitively against the city's registered
// stops; unresolved names degrade to coordinate-less placeholders rather than
// failing, since upstream data entry is expected to be incomplete.
func SynthesizeFromVia(route *fleet.Route, cityStops []fleet.Stop) []fleet.ResolvedStop {
	names := SplitViaText(route.From, route.ViaText, route.To)

	stopsByName := map[string]fleet.Stop{}
	for _, stop := range cityStops {
		stopsByName[strings.ToLower(stop.Name)] = stop
	}

	resolved := make([]fleet.ResolvedStop, 0, len(names))
	for index, name := range names {
		resolvedStop := fleet.ResolvedStop{
			Name:                   name,
			Sequence:               index + 1,
			IsMajor:                index == 0 || index == len(names)-1,
			EstimatedTimeFromStart: index * viaStopIntervalMinutes,
		}

		if stop, found := stopsByName[strings.ToLower(name)]; found {
			stopID := stop.ID
			resolvedStop.StopID = &stopID
			resolvedStop.Location = stop.Location
		}

		resolved = append(resolved, resolvedStop)
	}

	return resolved
}

// SplitViaText splits a comma-separated via description into trimmed waypoint
// names, with the from and to fields prepended and appended.
func SplitViaText(from string, viaText string, to string) []string {
	var names []string

	if strings.TrimSpace(from) != "" {
		names = append(names, strings.TrimSpace(from))
	}

	for _, segment := range strings.Split(viaText, ",") {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			names = append(names, segment)
		}
	}

	if strings.TrimSpace(to) != "" {
		names = append(names, strings.TrimSpace(to))
	}

	return names
}

// VirtualRoute derives a stop sequence for a route that has no record at all,
// from the stops tagged with its number. Name order is deterministic but not
// geographically meaningful.
func VirtualRoute(taggedStops []fleet.Stop) []fleet.ResolvedStop {
	slices.SortFunc(taggedStops, func(a fleet.Stop, b fleet.Stop) int {
		return strings.Compare(a.Name, b.Name)
	})

	resolved := make([]fleet.ResolvedStop, 0, len(taggedStops))
	for index, stop := range taggedStops {
		stopID := stop.ID

		resolved = append(resolved, fleet.ResolvedStop{
			StopID:                 &stopID,
			Name:                   stop.Name,
			Location:               stop.Location,
			Sequence:               index + 1,
			IsMajor:                index == 0 || index == len(taggedStops)-1,
			EstimatedTimeFromStart: index * virtualStopIntervalMinutes,
		})
	}

	return resolved
}
