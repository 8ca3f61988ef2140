package catalog

import (
	"testing"

	"github.com/busfleet/busfleet/pkg/fleet"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSplitViaText(t *testing.T) {
	names := SplitViaText("A", "X, Y, Z", "B")

	expected := []string{"A", "X", "Y", "Z", "B"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d waypoints, got %d: %v", len(expected), len(names), names)
	}

	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Waypoint %d: expected %q, got %q", i, name, names[i])
		}
	}
}

func TestSplitViaTextSkipsEmptySegments(t *testing.T) {
	names := SplitViaText("", "X,, , Y", "B")

	expected := []string{"X", "Y", "B"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d waypoints, got %d: %v", len(expected), len(names), names)
	}
}

func TestSynthesizeFromVia(t *testing.T) {
	route := &fleet.Route{
		RouteNumber: "10H",
		City:        "Hyderabad",
		From:        "A",
		To:          "B",
		ViaText:     "X, Y, Z",
	}

	// Only Y is a registered stop; the rest become placeholders.
	registered := fleet.Stop{
		ID:       primitive.NewObjectID(),
		Name:     "y",
		City:     "Hyderabad",
		Location: fleet.NewLocation(17.44, 78.39),
	}

	resolved := SynthesizeFromVia(route, []fleet.Stop{registered})

	if len(resolved) != 5 {
		t.Fatalf("Expected 5 waypoints, got %d", len(resolved))
	}

	expectedNames := []string{"A", "X", "Y", "Z", "B"}
	for i, stop := range resolved {
		if stop.Name != expectedNames[i] {
			t.Errorf("Waypoint %d: expected name %q, got %q", i, expectedNames[i], stop.Name)
		}
		if stop.Sequence != i+1 {
			t.Errorf("Waypoint %d: expected sequence %d, got %d", i, i+1, stop.Sequence)
		}
		if stop.EstimatedTimeFromStart != i*10 {
			t.Errorf("Waypoint %d: expected estimated time %d, got %d", i, i*10, stop.EstimatedTimeFromStart)
		}
	}

	if !resolved[0].IsMajor || !resolved[4].IsMajor {
		t.Error("First and last waypoints should be marked major")
	}
	if resolved[1].IsMajor || resolved[2].IsMajor || resolved[3].IsMajor {
		t.Error("Intermediate waypoints should not be marked major")
	}

	// Case-insensitive name resolution binds the registered stop.
	if resolved[2].Location == nil || resolved[2].StopID == nil {
		t.Error("Registered stop Y should resolve to coordinates")
	}

	// Unregistered names degrade to placeholders, never errors.
	if resolved[1].Location != nil {
		t.Error("Unregistered stop X should be a coordinate-less placeholder")
	}
}

func TestVirtualRouteOrdering(t *testing.T) {
	stops := []fleet.Stop{
		{ID: primitive.NewObjectID(), Name: "Charlie", Location: fleet.NewLocation(17.3, 78.3)},
		{ID: primitive.NewObjectID(), Name: "Alpha", Location: fleet.NewLocation(17.1, 78.1)},
		{ID: primitive.NewObjectID(), Name: "Bravo", Location: fleet.NewLocation(17.2, 78.2)},
	}

	resolved := VirtualRoute(stops)

	expectedNames := []string{"Alpha", "Bravo", "Charlie"}
	for i, stop := range resolved {
		if stop.Name != expectedNames[i] {
			t.Errorf("Position %d: expected %q, got %q", i, expectedNames[i], stop.Name)
		}
		if stop.Sequence != i+1 {
			t.Errorf("Position %d: expected sequence %d, got %d", i, i+1, stop.Sequence)
		}
		if stop.EstimatedTimeFromStart != i*15 {
			t.Errorf("Position %d: expected estimated time %d, got %d", i, i*15, stop.EstimatedTimeFromStart)
		}
	}

	if !resolved[0].IsMajor || !resolved[2].IsMajor {
		t.Error("First and last stops of a virtual route should be marked major")
	}
}
