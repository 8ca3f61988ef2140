package fleet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Route struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	RouteNumber string `bson:"routenumber" json:"routeNumber" groups:"basic"`
	RouteName   string `bson:"routename" json:"routeName" groups:"basic"`
	City        string `bson:"city" json:"city" groups:"basic"`

	From    string `bson:"from,omitempty" json:"from,omitempty" groups:"basic"`
	To      string `bson:"to,omitempty" json:"to,omitempty" groups:"basic"`
	ViaText string `bson:"viatext,omitempty" json:"viaText,omitempty" groups:"basic"`
	Notes   string `bson:"notes,omitempty" json:"notes,omitempty" groups:"detailed"`

	Stops []RouteStop `bson:"stops" json:"stops" groups:"detailed"`

	TotalDistance   float64 `bson:"totaldistance,omitempty" json:"totalDistance,omitempty" groups:"detailed"`
	AverageDuration float64 `bson:"averageduration,omitempty" json:"averageDuration,omitempty" groups:"detailed"`

	CreationDateTime     time.Time `bson:"creationdatetime" json:"-" groups:"internal"`
	ModificationDateTime time.Time `bson:"modificationdatetime" json:"-" groups:"internal"`
}

// RouteStop binds a Stop into a Route's traversal order. Sequence indices
// are unique and increasing; they define traversal order, not geography.
type RouteStop struct {
	StopID *primitive.ObjectID `bson:"stopid,omitempty" json:"stopId,omitempty" groups:"basic"`

	Sequence int  `bson:"sequence" json:"sequence" groups:"basic"`
	IsMajor  bool `bson:"ismajor" json:"isMajor" groups:"basic"`

	// Minutes from the start of the route. A fixed linear placeholder when
	// synthesized rather than a real estimate.
	EstimatedTimeFromStart int `bson:"estimatedtimefromstart" json:"estimatedTimeFromStart" groups:"basic"`
}

// ResolvedStop is a RouteStop joined against the stop directory, or a
// synthesized waypoint. A nil Location marks a placeholder whose name could
// not be resolved to a registered stop.
type ResolvedStop struct {
	StopID *primitive.ObjectID `json:"stopId,omitempty" groups:"basic"`

	Name     string    `json:"name" groups:"basic"`
	Location *Location `json:"location,omitempty" groups:"basic"`

	Sequence               int  `json:"sequence" groups:"basic"`
	IsMajor                bool `json:"isMajor" groups:"basic"`
	EstimatedTimeFromStart int  `json:"estimatedTimeFromStart" groups:"basic"`
}
