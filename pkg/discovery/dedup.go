package discovery

import "github.com/busfleet/busfleet/pkg/geo"

const duplicateRadiusMetres = 30

// Deduplicate collapses physically identical stops reported under different
// tags. A candidate within 30 m of an already kept stop is discarded, unless
// the kept one is unnamed and the candidate has a real name, in which case
// the candidate replaces it. Quadratic over candidates, but realistic radii
// keep n small enough that a spatial index would not pay for itself.
// Running the pass over an already deduplicated set changes nothing.
func Deduplicate(candidates []DiscoveredStop) []DiscoveredStop {
	var kept []DiscoveredStop

	for _, candidate := range candidates {
		existingIndex := -1

		for i, existing := range kept {
			if geo.Distance(candidate.Lat, candidate.Lng, existing.Lat, existing.Lng) < duplicateRadiusMetres {
				existingIndex = i
				break
			}
		}

		if existingIndex == -1 {
			kept = append(kept, candidate)
			continue
		}

		if kept[existingIndex].Name == unnamedStopName && candidate.Name != unnamedStopName {
			kept[existingIndex] = candidate
		}
	}

	return kept
}
