package fleet

// Location is a GeoJSON Point as stored in MongoDB - coordinates are
// [longitude, latitude].
type Location struct {
	Type        string    `bson:"type" json:"-" groups:"internal"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates" groups:"basic"`
}

func NewLocation(lat float64, lng float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

func (l *Location) Latitude() float64 {
	return l.Coordinates[1]
}

func (l *Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l *Location) Valid() bool {
	return l != nil && len(l.Coordinates) == 2
}

// Coordinates is a plain lat/lng pair used for vehicle telemetry, where the
// original device payload shape is kept rather than GeoJSON.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat" groups:"basic"`
	Lng float64 `bson:"lng" json:"lng" groups:"basic"`
}
