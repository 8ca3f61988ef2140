package history

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const QueueName = "position-events"

// PositionEvent is the archive payload queued for every accepted position
// update.
type PositionEvent struct {
	BusID     primitive.ObjectID `json:"busid" bson:"busid"`
	BusNumber string             `json:"busnumber" bson:"busnumber"`

	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Heading float64 `json:"heading" bson:"heading"`
	Speed   float64 `json:"speed" bson:"speed"`

	RecordedAt time.Time `json:"recordedat" bson:"recordedat"`
}
