package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderLine(t *testing.T) {
	ev := OrderCreatedEvent{
		EventID:   "abc-123",
		OrderID:   42,
		UserID:    5,
		CreatedAt: "2026-03-01T12:00:00Z",
		Tickets: []OrderCreatedTicket{
			{FlightID: 7, Row: 1, Seat: 2},
			{FlightID: 7, Row: 1, Seat: 3},
		},
	}
	line := formatOrderLine(ev)
	assert.Equal(t,
		"[2026-03-01T12:00:00Z] Order created | event_id=abc-123 | order_id=42 | user_id=5 | seats=[7:1-2,7:1-3]\n",
		line)
}

func TestFormatOrderLineNoTickets(t *testing.T) {
	line := formatOrderLine(OrderCreatedEvent{EventID: "x", CreatedAt: "now"})
	assert.Contains(t, line, "seats=[]")
}
