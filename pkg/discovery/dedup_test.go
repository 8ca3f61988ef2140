package discovery

import "testing"

func TestDeduplicateCollapsesNearbyStops(t *testing.T) {
	// ~11 m apart, well inside the 30 m radius.
	candidates := []DiscoveredStop{
		{Name: "Panjagutta", Lat: 17.4261, Lng: 78.4512},
		{Name: "Panjagutta Platform", Lat: 17.4262, Lng: 78.4512},
	}

	kept := Deduplicate(candidates)

	if len(kept) != 1 {
		t.Fatalf("Expected 1 stop after deduplication, got %d", len(kept))
	}
	if kept[0].Name != "Panjagutta" {
		t.Errorf("Expected the first stop to be kept, got %q", kept[0].Name)
	}
}

func TestDeduplicateKeepsDistantStops(t *testing.T) {
	candidates := []DiscoveredStop{
		{Name: "Panjagutta", Lat: 17.4261, Lng: 78.4512},
		{Name: "Ameerpet", Lat: 17.4375, Lng: 78.4483},
	}

	kept := Deduplicate(candidates)

	if len(kept) != 2 {
		t.Errorf("Expected both stops kept, got %d", len(kept))
	}
}

func TestDeduplicateNamedReplacesUnnamed(t *testing.T) {
	candidates := []DiscoveredStop{
		{Name: unnamedStopName, Lat: 17.4261, Lng: 78.4512},
		{Name: "Panjagutta", Lat: 17.4262, Lng: 78.4512},
	}

	kept := Deduplicate(candidates)

	if len(kept) != 1 {
		t.Fatalf("Expected 1 stop after deduplication, got %d", len(kept))
	}
	if kept[0].Name != "Panjagutta" {
		t.Errorf("Expected the named stop to replace the unnamed one, got %q", kept[0].Name)
	}
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	candidates := []DiscoveredStop{
		{Name: "Panjagutta", Lat: 17.4261, Lng: 78.4512},
		{Name: unnamedStopName, Lat: 17.4262, Lng: 78.4512},
		{Name: "Ameerpet", Lat: 17.4375, Lng: 78.4483},
	}

	once := Deduplicate(candidates)
	twice := Deduplicate(once)

	if len(once) != len(twice) {
		t.Fatalf("Expected second pass to change nothing, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Name != twice[i].Name || once[i].Lat != twice[i].Lat || once[i].Lng != twice[i].Lng {
			t.Errorf("Position %d: second pass changed the stop", i)
		}
	}
}
