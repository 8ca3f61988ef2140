package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/busfleet/busfleet/pkg/fleet"
)

const overpassFixture = `{
	"elements": [
		{"type": "node", "id": 1, "lat": 17.4261, "lon": 78.4512, "tags": {"name": "Panjagutta", "route_ref": "10H;222"}},
		{"type": "node", "id": 2, "lat": 17.4262, "lon": 78.4512, "tags": {"highway": "bus_stop"}},
		{"type": "node", "id": 3, "lat": 17.4375, "lon": 78.4483, "tags": {"name": "Ameerpet"}}
	]
}`

func TestFindStopsNearDeduplicatesAndSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overpassFixture))
	}))
	defer server.Close()

	adapter := NewAdapter([]string{server.URL}, nil)

	stops, err := adapter.FindStopsNear(context.Background(), 17.4261, 78.4512, 2000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Nodes 1 and 2 are ~11 m apart and collapse into the named one.
	if len(stops) != 2 {
		t.Fatalf("Expected 2 stops, got %d", len(stops))
	}
	if stops[0].Name != "Panjagutta" {
		t.Errorf("Expected Panjagutta nearest, got %q", stops[0].Name)
	}
	if stops[1].Name != "Ameerpet" {
		t.Errorf("Expected Ameerpet second, got %q", stops[1].Name)
	}
	if len(stops[0].Routes) != 2 {
		t.Errorf("Expected 2 route refs, got %v", stops[0].Routes)
	}
}

func TestFindStopsNearRejectsBadCoordinates(t *testing.T) {
	adapter := NewAdapter([]string{"http://unused.invalid"}, nil)

	_, err := adapter.FindStopsNear(context.Background(), 91, 78.4512, 1000)

	var validationError *fleet.ValidationError
	if !errors.As(err, &validationError) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestFindStopsNearFailsOverAcrossMirrors(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(overpassFixture))
	}))
	defer working.Close()

	adapter := NewAdapter([]string{broken.URL, working.URL}, nil)

	stops, err := adapter.FindStopsNear(context.Background(), 17.4261, 78.4512, 1000)
	if err != nil {
		t.Fatalf("Expected the second mirror to serve the request, got %v", err)
	}
	if len(stops) == 0 {
		t.Error("Expected stops from the fallback mirror")
	}
}

func TestFindStopsNearAllMirrorsDown(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	adapter := NewAdapter([]string{broken.URL, broken.URL}, nil)

	_, err := adapter.FindStopsNear(context.Background(), 17.4261, 78.4512, 1000)
	if !errors.Is(err, fleet.ErrDiscoveryUnavailable) {
		t.Errorf("Expected ErrDiscoveryUnavailable, got %v", err)
	}
}

func TestFindStopsNearTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer slow.Close()

	adapter := NewAdapter([]string{slow.URL}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := adapter.FindStopsNear(ctx, 17.4261, 78.4512, 1000)
	if !errors.Is(err, fleet.ErrDiscoveryTimeout) {
		t.Errorf("Expected ErrDiscoveryTimeout, got %v", err)
	}
}

func TestDefaultMirrorsUsedWhenNoneConfigured(t *testing.T) {
	adapter := NewAdapter(nil, nil)

	if len(adapter.Mirrors) != len(defaultMirrors) {
		t.Errorf("Expected the default mirror list, got %v", adapter.Mirrors)
	}
}
