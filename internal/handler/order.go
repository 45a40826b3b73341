package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airline-booking/internal/booking"
	"github.com/iliyamo/airline-booking/internal/queue"
	"github.com/iliyamo/airline-booking/internal/repository"
)

// OrderHandler serves ticket purchasing and order history. Publish is
// optional; when set it receives an OrderCreatedEvent after a
// successful commit and failures there never fail the request.
type OrderHandler struct {
	Alloc   *booking.Allocator
	Orders  *repository.OrderRepo
	Publish func(ctx context.Context, event queue.OrderCreatedEvent) error
}

func NewOrderHandler(alloc *booking.Allocator, orders *repository.OrderRepo) *OrderHandler {
	if alloc == nil || orders == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{Alloc: alloc, Orders: orders}
}

type createOrderReq struct {
	Tickets []booking.TicketRequest `json:"tickets"`
}

type createdTicket struct {
	ID       uint64 `json:"id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	FlightID uint64 `json:"flight"`
}

type createOrderResp struct {
	ID        uint64          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Tickets   []createdTicket `json:"tickets"`
}

// CreateOrder handles POST /v1/orders. Validation failures come back
// as a field-scoped 400 payload; a lost seat race is a 400 as well,
// reported once the unique index rejects the insert.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	order, tickets, err := h.Alloc.PlaceOrder(ctx, userID, req.Tickets)
	if err != nil {
		return orderError(c, err)
	}

	resp := createOrderResp{ID: order.ID, CreatedAt: order.CreatedAt}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, createdTicket{
			ID: t.ID, Row: t.Row, Seat: t.Seat, FlightID: t.FlightID,
		})
	}

	if h.Publish != nil {
		event := queue.OrderCreatedEvent{
			EventID:   uuid.NewString(),
			OrderID:   order.ID,
			UserID:    userID,
			CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
		}
		for _, t := range tickets {
			event.Tickets = append(event.Tickets, queue.OrderCreatedTicket{
				FlightID: t.FlightID, Row: t.Row, Seat: t.Seat,
			})
		}
		// Best effort; the order is already committed.
		_ = h.Publish(ctx, event)
	}

	return c.JSON(http.StatusCreated, resp)
}

// orderError maps allocator failures onto the 400 taxonomy.
func orderError(c echo.Context, err error) error {
	var reqErr *booking.RequestError
	if errors.As(err, &reqErr) {
		field := fmt.Sprintf("tickets[%d].%s", reqErr.TicketIndex, reqErr.Field)
		return c.JSON(http.StatusBadRequest, echo.Map{field: reqErr.Err.Error()})
	}
	switch {
	case errors.Is(err, booking.ErrEmptyOrder):
		return c.JSON(http.StatusBadRequest, echo.Map{"tickets": err.Error()})
	case errors.Is(err, booking.ErrSeatTaken),
		errors.Is(err, booking.ErrFlightNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
}

// ListOrders handles GET /v1/orders, newest first, scoped to the
// requesting user.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	out, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return repoError(c, err, "list orders failed")
	}
	return c.JSON(http.StatusOK, out)
}

// GetOrder handles GET /v1/orders/:id. Another user's order yields
// 403, a missing one 404.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.Orders.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		return repoError(c, err, "load order failed")
	}
	return c.JSON(http.StatusOK, out)
}
