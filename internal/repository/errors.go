// Package repository implements the data-access layer over MySQL with
// hand-written SQL. Sentinel errors defined here let handlers translate
// failure cases into HTTP statuses without inspecting driver errors:
// not-found sentinels become 404, ErrForbidden becomes 403 and
// ErrConflict becomes 409 (for example deleting a crew role that crews
// still reference).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete cannot proceed because a
// PROTECT or RESTRICT delete policy found dependent records.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by UserRepo.Create on a duplicate email.
var ErrEmailExists = errors.New("email already exists")

// Per-entity not-found sentinels. Lookups translate sql.ErrNoRows into
// one of these so handlers can report which resource was missing.
var (
	ErrCountryNotFound      = errors.New("country not found")
	ErrAirportNotFound      = errors.New("airport not found")
	ErrRouteNotFound        = errors.New("route not found")
	ErrAirplaneTypeNotFound = errors.New("airplane type not found")
	ErrAirplaneNotFound     = errors.New("airplane not found")
	ErrCrewRoleNotFound     = errors.New("crew role not found")
	ErrCrewNotFound         = errors.New("crew not found")
	ErrFlightNotFound       = errors.New("flight not found")
	ErrOrderNotFound        = errors.New("order not found")
)
