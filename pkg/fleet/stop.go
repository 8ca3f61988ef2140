package fleet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Stop struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name     string    `bson:"name" json:"name" groups:"basic"`
	Location *Location `bson:"location" json:"location" groups:"basic"`

	City     string `bson:"city" json:"city" groups:"basic"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty" groups:"detailed"`

	// Route numbers known to serve this stop. Grows as routes are entered;
	// never shrinks.
	Routes []string `bson:"routes" json:"routes" groups:"basic"`

	CreationDateTime     time.Time `bson:"creationdatetime" json:"-" groups:"internal"`
	ModificationDateTime time.Time `bson:"modificationdatetime" json:"-" groups:"internal"`
}
