package fleet

import "time"

const (
	ProgressStatusAtStation = "at-station"
	ProgressStatusArriving  = "arriving"
	ProgressStatusDeparted  = "departed"
	ProgressStatusInTransit = "in-transit"
)

// ProgressRecord is the derived per-bus-per-query live tracking state. It is
// recomputed on every query and never persisted.
type ProgressRecord struct {
	BusNumber string `json:"busNumber" groups:"basic"`

	Lat float64 `json:"lat" groups:"basic"`
	Lng float64 `json:"lng" groups:"basic"`

	LastStopSequence int    `json:"lastStopSequence" groups:"basic"`
	NextStopSequence int    `json:"nextStopSequence" groups:"basic"`
	Status           string `json:"status" groups:"basic"`

	// Metres to the nearest resolvable stop. Serialized as 0 when the bus has
	// no position or no stop on the route has coordinates; the engine keeps
	// the unknown case distinct internally.
	DistanceToStop float64 `json:"distanceToStop" groups:"basic"`

	Speed   float64 `json:"speed" groups:"basic"`
	Heading float64 `json:"heading" groups:"basic"`

	ScheduledDeparture string    `json:"scheduledDeparture,omitempty" groups:"basic"`
	LastUpdated        time.Time `json:"lastUpdated" groups:"basic"`

	StartLocation string `json:"startLocation,omitempty" groups:"basic"`
	EndLocation   string `json:"endLocation,omitempty" groups:"basic"`
}
