package fleet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Driver struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id" groups:"basic"`

	Name  string `bson:"name" json:"name" groups:"basic"`
	Email string `bson:"email" json:"email" groups:"basic"`
	Phone string `bson:"phone" json:"phone" groups:"detailed"`

	// One-way bcrypt hash, never returned to clients.
	Password string `bson:"password" json:"-" groups:"internal"`

	LicenseNumber string `bson:"licensenumber" json:"licenseNumber" groups:"basic"`

	RouteType       string   `bson:"routetype" json:"routeType" groups:"basic"`
	HomeCity        string   `bson:"homecity" json:"homeCity" groups:"basic"`
	OperatingCities []string `bson:"operatingcities,omitempty" json:"operatingCities,omitempty" groups:"detailed"`

	// Default bus number used when starting service without declaring one.
	BusNumber string `bson:"busnumber,omitempty" json:"busNumber,omitempty" groups:"detailed"`

	CreationDateTime time.Time `bson:"creationdatetime" json:"-" groups:"internal"`
}
