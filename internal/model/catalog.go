package model

import "time"

// Country is a row in the `countries` table. Country names are unique;
// airports reference their country by ID.
type Country struct {
	ID        uint64    // countries.id
	Name      string    // countries.name (unique)
	CreatedAt time.Time // countries.created_at
	UpdatedAt time.Time // countries.updated_at
}

// Airport is a row in the `airports` table. Every airport belongs to a
// country and records the closest big city for display purposes.
type Airport struct {
	ID             uint64    // airports.id
	Name           string    // airports.name
	ClosestBigCity string    // airports.closest_big_city
	CountryID      uint64    // airports.country_id (references countries.id)
	CreatedAt      time.Time // airports.created_at
	UpdatedAt      time.Time // airports.updated_at
}

// Route is a directed pair of airports with a distance in kilometres.
// The display name "{source}-{destination}" is derived at read time and
// never stored.
type Route struct {
	ID            uint64    // routes.id
	SourceID      uint64    // routes.source_id (references airports.id)
	DestinationID uint64    // routes.destination_id (references airports.id)
	Distance      int       // routes.distance
	CreatedAt     time.Time // routes.created_at
	UpdatedAt     time.Time // routes.updated_at
}

// AirplaneType is a label-only classification row in `airplane_types`.
type AirplaneType struct {
	ID        uint64    // airplane_types.id
	Name      string    // airplane_types.name
	CreatedAt time.Time // airplane_types.created_at
	UpdatedAt time.Time // airplane_types.updated_at
}

// Airplane describes a physical airplane and its seat-map geometry.
// RowCount and SeatsInRow are both strictly positive; the capacity
// RowCount*SeatsInRow is derived, never stored.
type Airplane struct {
	ID             uint64    // airplanes.id
	Name           string    // airplanes.name
	RowCount       int       // airplanes.row_count
	SeatsInRow     int       // airplanes.seats_in_row
	AirplaneTypeID uint64    // airplanes.airplane_type_id (references airplane_types.id)
	CreatedAt      time.Time // airplanes.created_at
	UpdatedAt      time.Time // airplanes.updated_at
}

// CrewRole is a row in `crew_roles` (pilot, co-pilot, steward and so on).
// A role cannot be deleted while any crew member still references it.
type CrewRole struct {
	ID        uint64    // crew_roles.id
	Name      string    // crew_roles.name
	CreatedAt time.Time // crew_roles.created_at
	UpdatedAt time.Time // crew_roles.updated_at
}

// Crew is a crew member assigned to flights through the flight_crews
// join table.
type Crew struct {
	ID        uint64    // crews.id
	FirstName string    // crews.first_name
	LastName  string    // crews.last_name
	RoleID    uint64    // crews.role_id (references crew_roles.id, PROTECT)
	CreatedAt time.Time // crews.created_at
	UpdatedAt time.Time // crews.updated_at
}
