package fleet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BusStatusActive   = "active"
	BusStatusInactive = "inactive"
)

const (
	RouteTypeCity    = "city"
	RouteTypeExpress = "express"
	RouteTypeBoth    = "both"
)

type Bus struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	BusNumber string             `bson:"busnumber" json:"busNumber" groups:"basic"`
	RouteType string             `bson:"routetype" json:"routeType" groups:"basic"`
	DriverID  primitive.ObjectID `bson:"driverid" json:"-" groups:"internal"`

	Status string `bson:"status" json:"status" groups:"basic"`

	CurrentLocation *Coordinates `bson:"currentlocation,omitempty" json:"currentLocation,omitempty" groups:"basic"`
	Heading         float64      `bson:"heading" json:"heading" groups:"basic"`
	Speed           float64      `bson:"speed" json:"speed" groups:"basic"`

	LastUpdated time.Time  `bson:"lastupdated" json:"lastUpdated" groups:"basic"`
	StartedAt   *time.Time `bson:"startedat,omitempty" json:"startedAt,omitempty" groups:"basic"`
	EndedAt     *time.Time `bson:"endedat,omitempty" json:"endedAt,omitempty" groups:"basic"`

	// City service
	OperatingCity string `bson:"operatingcity,omitempty" json:"operatingCity,omitempty" groups:"basic"`
	RouteNumber   string `bson:"routenumber,omitempty" json:"routeNumber,omitempty" groups:"basic"`

	// Express service
	SourceCity      string `bson:"sourcecity,omitempty" json:"sourceCity,omitempty" groups:"basic"`
	DestinationCity string `bson:"destinationcity,omitempty" json:"destinationCity,omitempty" groups:"basic"`

	ScheduledDeparture string `bson:"scheduleddeparture,omitempty" json:"scheduledDeparture,omitempty" groups:"basic"`
}
