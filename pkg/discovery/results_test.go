package discovery

import "testing"

func TestPickNamePriority(t *testing.T) {
	cases := []struct {
		tags     map[string]string
		expected string
	}{
		{map[string]string{"name:te": "తెలుగు", "name": "English Name"}, "తెలుగు"},
		{map[string]string{"name:hi": "हिन्दी", "name": "English Name"}, "हिन्दी"},
		{map[string]string{"name": "Koti Bus Stop", "name:en": "Koti"}, "Koti Bus Stop"},
		{map[string]string{"name:en": "Koti"}, "Koti"},
		{map[string]string{"ref": "10H"}, "10H"},
		{map[string]string{}, unnamedStopName},
		{nil, unnamedStopName},
	}

	for _, tc := range cases {
		if got := pickName(tc.tags); got != tc.expected {
			t.Errorf("pickName(%v): expected %q, got %q", tc.tags, tc.expected, got)
		}
	}
}

func TestParseRouteRefsSplitsAndDeduplicates(t *testing.T) {
	tags := map[string]string{"route_ref": "10H;10K, 10H ; 222"}

	refs := parseRouteRefs(tags)

	expected := []string{"10H", "10K", "222"}
	if len(refs) != len(expected) {
		t.Fatalf("Expected %d refs, got %d: %v", len(expected), len(refs), refs)
	}
	for i, ref := range expected {
		if refs[i] != ref {
			t.Errorf("Position %d: expected %q, got %q", i, ref, refs[i])
		}
	}
}

func TestParseRouteRefsFallsBackToRef(t *testing.T) {
	refs := parseRouteRefs(map[string]string{"ref": "113M"})

	if len(refs) != 1 || refs[0] != "113M" {
		t.Errorf("Expected [113M], got %v", refs)
	}
}

func TestParseRouteRefsEmpty(t *testing.T) {
	if refs := parseRouteRefs(map[string]string{}); len(refs) != 0 {
		t.Errorf("Expected no refs, got %v", refs)
	}
}

func TestExtractStopsSkipsZeroCoordinates(t *testing.T) {
	elements := []overpassElement{
		{Lat: 17.4261, Lon: 78.4512, Tags: map[string]string{"name": "Panjagutta"}},
		{Lat: 0, Lon: 0, Tags: map[string]string{"name": "Phantom"}},
	}

	stops := extractStops(elements, 17.4261, 78.4512)

	if len(stops) != 1 {
		t.Fatalf("Expected 1 stop, got %d", len(stops))
	}
	if stops[0].Name != "Panjagutta" {
		t.Errorf("Expected Panjagutta, got %q", stops[0].Name)
	}
	if stops[0].Distance != 0 {
		t.Errorf("Expected 0m from the query point, got %f", stops[0].Distance)
	}
}

func TestExtractStopsUsesWayCentre(t *testing.T) {
	elements := []overpassElement{
		{
			Type: "way",
			Center: &struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			}{Lat: 17.4375, Lon: 78.4483},
			Tags: map[string]string{"name": "Ameerpet Station"},
		},
	}

	stops := extractStops(elements, 17.4375, 78.4483)

	if len(stops) != 1 {
		t.Fatalf("Expected 1 stop, got %d", len(stops))
	}
	if stops[0].Lat != 17.4375 || stops[0].Lng != 78.4483 {
		t.Errorf("Expected the way centre coordinates, got %f,%f", stops[0].Lat, stops[0].Lng)
	}
}

func TestSortByDistance(t *testing.T) {
	stops := []DiscoveredStop{
		{Name: "Far", Distance: 900},
		{Name: "Near", Distance: 120},
		{Name: "Mid", Distance: 450},
	}

	sortByDistance(stops)

	expected := []string{"Near", "Mid", "Far"}
	for i, name := range expected {
		if stops[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, stops[i].Name)
		}
	}
}

func TestClampRadius(t *testing.T) {
	cases := []struct {
		radius   float64
		expected float64
	}{
		{0, 200},
		{199, 200},
		{200, 200},
		{5000, 5000},
		{10000, 10000},
		{50000, 10000},
	}

	for _, tc := range cases {
		if got := clampRadius(tc.radius); got != tc.expected {
			t.Errorf("clampRadius(%f): expected %f, got %f", tc.radius, tc.expected, got)
		}
	}
}
