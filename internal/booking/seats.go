// Package booking implements the seat-inventory core: validating ticket
// coordinates against an airplane's seat map and creating orders with all
// of their tickets atomically. Everything here is storage-agnostic; the
// single authoritative oversell guard is the database unique index on
// (flight, row, seat), surfaced by the repository as ErrSeatTaken.
package booking

import "fmt"

// SeatError reports a row or seat value that falls outside the airplane
// geometry. Field is "row" or "seat"; Value is the offending number and
// Max the inclusive upper bound. The rendered message is intended for
// direct display to the user.
type SeatError struct {
	Field string
	Value int
	Max   int
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s must be in range [1, %d], not %d", e.Field, e.Max, e.Value)
}

// ValidateRow checks a 1-based row number against the airplane's row
// count. It is pure: no I/O, no side effects.
func ValidateRow(row, maxRows int) *SeatError {
	if row < 1 || row > maxRows {
		return &SeatError{Field: "row", Value: row, Max: maxRows}
	}
	return nil
}

// ValidateSeat checks a 1-based seat number against the number of seats
// in a row.
func ValidateSeat(seat, maxSeats int) *SeatError {
	if seat < 1 || seat > maxSeats {
		return &SeatError{Field: "seat", Value: seat, Max: maxSeats}
	}
	return nil
}

// Capacity returns the total number of seats a seat map holds. Derived,
// never stored.
func Capacity(rowCount, seatsInRow int) int {
	return rowCount * seatsInRow
}
