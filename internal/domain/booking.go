package domain

import "time"

// BookingStatus is the approval status of a booking.
// WAITING is the initial status; APPROVED and REJECTED are terminal.
type BookingStatus string

// Booking statuses.
const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState is a query-time filter bucket for listing bookings.
// CURRENT, PAST and FUTURE are evaluated relative to the time of the call;
// WAITING and REJECTED filter by status; ALL is unfiltered.
type BookingState string

// Booking list filter states.
const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState parses s into a BookingState.
// Returns false when s names no known state.
func ParseBookingState(s string) (BookingState, bool) {
	switch BookingState(s) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(s), true
	}
	return "", false
}

// Booking is a reservation of an item by a non-owner user over a time
// interval, gated by owner approval.
type Booking struct {
	// ID is the unique identifier for the booking (auto-generated).
	ID int64 `json:"id"`

	// Start is the beginning of the reservation interval.
	Start time.Time `json:"start"`

	// End is the end of the reservation interval. Strictly after Start.
	End time.Time `json:"end"`

	// ItemID references the booked item. Immutable.
	ItemID int64 `json:"itemId"`

	// BookerID references the requesting user. Immutable.
	BookerID int64 `json:"bookerId"`

	// Status is the approval status. Transitions exactly once,
	// from WAITING to APPROVED or REJECTED by the item's owner.
	Status BookingStatus `json:"status"`
}

// NewBooking creates a new Booking in the WAITING status.
func NewBooking(itemID, bookerID int64, start, end time.Time) *Booking {
	return &Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   StatusWaiting,
	}
}

// IsDecided reports whether the booking has left the WAITING status.
func (b *Booking) IsDecided() bool {
	return b.Status != StatusWaiting
}
