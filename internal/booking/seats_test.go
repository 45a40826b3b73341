package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRowBounds(t *testing.T) {
	// 1..maxRows inclusive, nothing outside.
	assert.Error(t, ValidateRow(0, 10))
	assert.Nil(t, ValidateRow(1, 10))
	assert.Nil(t, ValidateRow(10, 10))
	assert.Error(t, ValidateRow(11, 10))
	assert.Error(t, ValidateRow(-3, 10))
}

func TestValidateSeatBounds(t *testing.T) {
	assert.Error(t, ValidateSeat(0, 6))
	assert.Nil(t, ValidateSeat(1, 6))
	assert.Nil(t, ValidateSeat(6, 6))
	assert.Error(t, ValidateSeat(7, 6))
}

func TestSeatErrorMessage(t *testing.T) {
	err := ValidateRow(11, 10)
	assert.EqualError(t, err, "row must be in range [1, 10], not 11")

	err = ValidateSeat(0, 6)
	assert.EqualError(t, err, "seat must be in range [1, 6], not 0")
}

func TestSmallAirplaneBounds(t *testing.T) {
	// A 2x2 airplane accepts exactly rows 1..2 and seats 1..2.
	for row := 1; row <= 2; row++ {
		assert.Nil(t, ValidateRow(row, 2))
	}
	assert.Error(t, ValidateRow(3, 2))
	for seat := 1; seat <= 2; seat++ {
		assert.Nil(t, ValidateSeat(seat, 2))
	}
	assert.Error(t, ValidateSeat(3, 2))
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 60, Capacity(10, 6))
	assert.Equal(t, 4, Capacity(2, 2))
	assert.Equal(t, 0, Capacity(0, 6))
}
