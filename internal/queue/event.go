// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// OrderCreatedTicket is one booked seat inside an OrderCreatedEvent.
type OrderCreatedTicket struct {
	FlightID uint64 `json:"flight"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
}

// OrderCreatedEvent is published after an order commits. It carries
// enough for downstream consumers to log, notify or feed analytics
// without querying the primary database. EventID makes redeliveries
// detectable.
type OrderCreatedEvent struct {
	EventID   string               `json:"event_id"`
	OrderID   uint64               `json:"order_id"`
	UserID    uint64               `json:"user_id"`
	CreatedAt string               `json:"created_at"`
	Tickets   []OrderCreatedTicket `json:"tickets"`
}
