package history

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/busfleet/busfleet/pkg/elastic_client"
	"github.com/busfleet/busfleet/pkg/fleet"
)

// ServiceEventElasticDocument is indexed whenever a driver starts or stops a
// service, for fleet utilisation analytics.
type ServiceEventElasticDocument struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"eventtype"`

	BusID     string `json:"busid"`
	BusNumber string `json:"busnumber"`
	RouteType string `json:"routetype"`

	RouteNumber     string `json:"routenumber,omitempty"`
	OperatingCity   string `json:"operatingcity,omitempty"`
	SourceCity      string `json:"sourcecity,omitempty"`
	DestinationCity string `json:"destinationcity,omitempty"`
}

// ElasticServiceEvents records service lifecycle events via the background
// bulk indexer; it never blocks the request path.
type ElasticServiceEvents struct {
	Elastic *elastic_client.Client
}

func (recorder *ElasticServiceEvents) RecordServiceEvent(eventType string, bus *fleet.Bus) {
	document, _ := json.Marshal(ServiceEventElasticDocument{
		Timestamp: time.Now(),
		EventType: eventType,

		BusID:     bus.ID.Hex(),
		BusNumber: bus.BusNumber,
		RouteType: bus.RouteType,

		RouteNumber:     bus.RouteNumber,
		OperatingCity:   bus.OperatingCity,
		SourceCity:      bus.SourceCity,
		DestinationCity: bus.DestinationCity,
	})

	recorder.Elastic.IndexRequest("service-events", bytes.NewReader(document))
}
