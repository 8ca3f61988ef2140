package dataimporter

// StopRecord is one row of a stop seed CSV.
type StopRecord struct {
	Name     string  `csv:"name"`
	City     string  `csv:"city"`
	Landmark string  `csv:"landmark"`
	Lat      float64 `csv:"lat"`
	Lng      float64 `csv:"lng"`

	// Semicolon-delimited route numbers serving the stop.
	Routes string `csv:"routes"`
}

// RouteDefinition is one entry of a route seed YAML document.
type RouteDefinition struct {
	RouteNumber string `yaml:"routeNumber"`
	RouteName   string `yaml:"routeName"`
	City        string `yaml:"city"`

	From    string `yaml:"from"`
	To      string `yaml:"to"`
	ViaText string `yaml:"viaText"`
	Notes   string `yaml:"notes"`

	Stops []RouteStopDefinition `yaml:"stops"`
}

type RouteStopDefinition struct {
	// Stop name resolved against the directory at import time.
	Name string `yaml:"name"`

	Sequence               int  `yaml:"sequence"`
	IsMajor                bool `yaml:"isMajor"`
	EstimatedTimeFromStart int  `yaml:"estimatedTimeFromStart"`
}
