package booking

import "time"

// TableAggregate is the aggregate id used for events about the bookings sheet as a whole.
const TableAggregate = "bookings"

type BookingAdded struct {
	BookingID ID        `json:"booking_id"`
	Platform  Platform  `json:"platform"`
	CheckIn   time.Time `json:"check_in"`
	Nights    int       `json:"nights"`
	Revenue   float64   `json:"revenue"`
	At        time.Time `json:"at"`
}

func (e BookingAdded) EventName() string     { return "booking.added" }
func (e BookingAdded) AggregateID() string   { return string(e.BookingID) }
func (e BookingAdded) OccurredAt() time.Time { return e.At }

type BookingsReplaced struct {
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

func (e BookingsReplaced) EventName() string     { return "booking.table_replaced" }
func (e BookingsReplaced) AggregateID() string   { return TableAggregate }
func (e BookingsReplaced) OccurredAt() time.Time { return e.At }

type BookingsDeleted struct {
	IDs []ID      `json:"ids"`
	At  time.Time `json:"at"`
}

func (e BookingsDeleted) EventName() string     { return "booking.deleted" }
func (e BookingsDeleted) AggregateID() string   { return TableAggregate }
func (e BookingsDeleted) OccurredAt() time.Time { return e.At }
