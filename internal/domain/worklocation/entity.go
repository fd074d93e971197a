package worklocation

import "time"

type LocationType string

const (
	LocationTypeMainOffice LocationType = "main_office"
	LocationTypeBranch     LocationType = "branch"
)

var LocationTypeValues = []string{
	string(LocationTypeMainOffice),
	string(LocationTypeBranch),
}

// WorkLocation is a registered geofence: a center coordinate with a radius.
// The attendance flow only ever reads these; mutation happens through the
// admin CRUD.
type WorkLocation struct {
	ID           string
	Name         string
	Type         LocationType
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
