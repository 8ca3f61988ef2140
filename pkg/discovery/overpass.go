package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/busfleet/busfleet/pkg/fleet"
	"github.com/busfleet/busfleet/pkg/util"
	"github.com/rs/zerolog/log"
)

const mirrorTimeout = 25 * time.Second

const minRadiusMetres = 200
const maxRadiusMetres = 10000
const maxResults = 40

var defaultMirrors = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://maps.mail.ru/osm/tools/overpass/api/interpreter",
}

// Adapter discovers unlisted bus stops near arbitrary coordinates from the
// OpenStreetMap Overpass API, failing over across mirrors.
type Adapter struct {
	Mirrors    []string
	HTTPClient *http.Client

	Cache *ResultCache
}

func NewAdapter(mirrors []string, cache *ResultCache) *Adapter {
	if len(mirrors) == 0 {
		mirrors = defaultMirrors
	}

	return &Adapter{
		Mirrors:    mirrors,
		HTTPClient: &http.Client{},
		Cache:      cache,
	}
}

// DiscoveredStop is a deduplicated external stop, sorted by distance from
// the query point.
type DiscoveredStop struct {
	Name     string   `json:"name"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Distance float64  `json:"distance"`
	Routes   []string `json:"routes"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type string  `json:"type"`
	ID   int64   `json:"id"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`

	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`

	Tags map[string]string `json:"tags"`
}

// FindStopsNear returns up to 40 deduplicated stops within radius metres of
// the point, nearest first.
func (adapter *Adapter) FindStopsNear(ctx context.Context, lat float64, lng float64, radius float64) ([]DiscoveredStop, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fleet.NewValidationError("Coordinates are out of range")
	}

	radius = clampRadius(radius)

	if adapter.Cache != nil {
		if cached, found := adapter.Cache.Get(ctx, lat, lng, radius); found {
			return cached, nil
		}
	}

	response, err := adapter.query(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}

	stops := extractStops(response.Elements, lat, lng)

	// Way centres can land outside the requested radius even when part of
	// the way is inside it.
	util.InPlaceFilter(&stops, func(stop DiscoveredStop) bool {
		return stop.Distance <= radius
	})

	stops = Deduplicate(stops)

	sortByDistance(stops)
	if len(stops) > maxResults {
		stops = stops[:maxResults]
	}

	if adapter.Cache != nil {
		adapter.Cache.Set(ctx, lat, lng, radius, stops)
	}

	return stops, nil
}

func clampRadius(radius float64) float64 {
	if radius < minRadiusMetres {
		return minRadiusMetres
	}
	if radius > maxRadiusMetres {
		return maxRadiusMetres
	}

	return radius
}

// buildQuery produces a single combined Overpass QL query for every bus stop
// tagging scheme. One query deliberately, so the same physical stop cannot
// come back once per tag filter.
func buildQuery(lat float64, lng float64, radius float64) string {
	return fmt.Sprintf(`[out:json][timeout:20];
(
  node["highway"="bus_stop"](around:%.0f,%f,%f);
  node["amenity"="bus_station"](around:%.0f,%f,%f);
  node["public_transport"="platform"]["bus"="yes"](around:%.0f,%f,%f);
);
out body;`, radius, lat, lng, radius, lat, lng, radius, lat, lng)
}

// query tries each mirror in sequence with a per-mirror timeout, returning
// the first successful response. Only when every mirror is exhausted does it
// fail, distinguishing timeout (retry shortly) from other errors.
func (adapter *Adapter) query(ctx context.Context, lat float64, lng float64, radius float64) (*overpassResponse, error) {
	overpassQuery := buildQuery(lat, lng, radius)

	sawTimeout := false

	for _, mirror := range adapter.Mirrors {
		response, err := adapter.queryMirror(ctx, mirror, overpassQuery)
		if err == nil {
			return response, nil
		}

		if errors.Is(err, context.DeadlineExceeded) {
			sawTimeout = true
		}

		log.Warn().Err(err).Str("mirror", mirror).Msg("Overpass mirror failed")
	}

	if sawTimeout {
		return nil, fleet.ErrDiscoveryTimeout
	}

	return nil, fleet.ErrDiscoveryUnavailable
}

func (adapter *Adapter) queryMirror(ctx context.Context, mirror string, overpassQuery string) (*overpassResponse, error) {
	mirrorCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	body := url.Values{"data": []string{overpassQuery}}

	request, err := http.NewRequestWithContext(mirrorCtx, "POST", mirror, strings.NewReader(body.Encode()))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResponse, err := adapter.HTTPClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", httpResponse.StatusCode)
	}

	jsonBytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, err
	}

	var response overpassResponse
	if err := json.Unmarshal(jsonBytes, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
