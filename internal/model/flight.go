package model

import "time"

// Flight is a scheduled operation of one airplane over one route.
// Crew assignments live in the flight_crews join table. Flights are
// listed ordered by (departure_time, route_id).
type Flight struct {
	ID            uint64    // flights.id
	RouteID       uint64    // flights.route_id (references routes.id)
	AirplaneID    uint64    // flights.airplane_id (references airplanes.id)
	DepartureTime time.Time // flights.departure_time (UTC)
	ArrivalTime   time.Time // flights.arrival_time (UTC)
	CrewIDs       []uint64  // flight_crews.crew_id, optional
	CreatedAt     time.Time // flights.created_at
	UpdatedAt     time.Time // flights.updated_at
}
