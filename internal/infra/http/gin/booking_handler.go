package ginserver

import (
	"fmt"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	bookingapp "lynx/internal/app/handlers/bookings"
	costsapp "lynx/internal/app/handlers/costs"
	"lynx/internal/app/queries"
	domainbooking "lynx/internal/domain/booking"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h BookingHandler) List(c *gin.Context) {
	spec, err := periodFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := viewFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	q := bookingapp.ListBookingsQuery{Period: spec, View: view}
	result, err := queries.Ask[bookingapp.ListBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create adds one stay. Omitted consumables default to what one stay
// currently costs to restock.
func (h BookingHandler) Create(c *gin.Context) {
	var req dto.NewBooking
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	var defaultConsumables float64
	if req.Consumables == nil {
		total, err := queries.Ask[costsapp.ConsumablesTotalQuery, dto.ConsumablesTotal](c.Request.Context(), h.Queries, costsapp.ConsumablesTotalQuery{})
		if err != nil {
			writeError(c, err)
			return
		}
		defaultConsumables = total.EUR
	}
	cmd := bookingapp.AddBookingCommand{
		Entry:           req.Entry(defaultConsumables),
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.AddBookingCommand, *bookingapp.AddBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type replaceBookingsRequest struct {
	Rows []dto.Booking `json:"rows"`
}

func (h BookingHandler) Replace(c *gin.Context) {
	var req replaceBookingsRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	rows := make([]domainbooking.Booking, 0, len(req.Rows))
	for i, r := range req.Rows {
		b, err := r.ToDomain()
		if err != nil {
			writeError(c, fmt.Errorf("%w: row %d: %v", errBadRequest, i+1, err))
			return
		}
		rows = append(rows, b)
	}
	cmd := bookingapp.ReplaceBookingsCommand{Rows: rows}
	result, err := commands.Dispatch[bookingapp.ReplaceBookingsCommand, *bookingapp.ReplaceBookingsResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Delete(c *gin.Context) {
	cmd := bookingapp.DeleteBookingsCommand{IDs: []domainbooking.ID{domainbooking.ID(c.Param("id"))}}
	result, err := commands.Dispatch[bookingapp.DeleteBookingsCommand, *bookingapp.DeleteBookingsResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}
