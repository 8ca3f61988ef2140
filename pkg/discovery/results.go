package discovery

import (
	"strings"

	"github.com/busfleet/busfleet/pkg/geo"
	"github.com/busfleet/busfleet/pkg/util"
	"golang.org/x/exp/slices"
)

const unnamedStopName = "Bus Stop"

// namePriority is checked in order; local-language names win over the
// generic and English tags, with the short ref code as a last resort.
var namePriority = []string{"name:te", "name:hi", "name", "name:en", "ref"}

func extractStops(elements []overpassElement, queryLat float64, queryLng float64) []DiscoveredStop {
	stops := make([]DiscoveredStop, 0, len(elements))

	for _, element := range elements {
		lat, lng := element.Lat, element.Lon
		if element.Center != nil {
			lat, lng = element.Center.Lat, element.Center.Lon
		}

		if lat == 0 && lng == 0 {
			continue
		}

		stops = append(stops, DiscoveredStop{
			Name:     pickName(element.Tags),
			Lat:      lat,
			Lng:      lng,
			Distance: geo.Distance(queryLat, queryLng, lat, lng),
			Routes:   parseRouteRefs(element.Tags),
		})
	}

	return stops
}

func pickName(tags map[string]string) string {
	for _, key := range namePriority {
		if tags[key] != "" {
			return tags[key]
		}
	}

	return unnamedStopName
}

// parseRouteRefs normalizes the semicolon/comma-delimited route code fields
// into a deduplicated list.
func parseRouteRefs(tags map[string]string) []string {
	raw := tags["route_ref"]
	if raw == "" {
		raw = tags["ref"]
	}
	if raw == "" {
		return []string{}
	}

	raw = strings.ReplaceAll(raw, ",", ";")

	var refs []string
	for _, ref := range strings.Split(raw, ";") {
		refs = append(refs, strings.TrimSpace(ref))
	}

	return util.RemoveDuplicateStrings(refs, []string{})
}

func sortByDistance(stops []DiscoveredStop) {
	slices.SortStableFunc(stops, func(a DiscoveredStop, b DiscoveredStop) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})
}
