package model

import (
	"slices"
	"time"
	"venue/shared/model"
	"venue/shared/timezone"
)

const (
	TableName  = "table_bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldTableID     = "table_id"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldPartySize   = "party_size"
	FieldGuestName   = "guest_name"
	FieldStatus      = "status"
)

const (
	StatusPending          = "pending"
	StatusConfirmed        = "confirmed"
	StatusArrived          = "arrived"
	StatusSeated           = "seated"
	StatusCompleted        = "completed"
	StatusNoShow           = "no_show"
	StatusCancelledByGuest = "cancelled_by_guest"
	StatusCancelledByVenue = "cancelled_by_venue"
)

var allStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusArrived,
	StatusSeated,
	StatusCompleted,
	StatusNoShow,
	StatusCancelledByGuest,
	StatusCancelledByVenue,
}

// terminalStatuses are the statuses after which a booking no longer occupies
// its table. The timeline builder and the deactivation guard both rely on
// this single list; do not duplicate it.
var terminalStatuses = []string{
	StatusCompleted,
	StatusNoShow,
	StatusCancelledByGuest,
	StatusCancelledByVenue,
}

var cancelledStatuses = []string{
	StatusCancelledByGuest,
	StatusCancelledByVenue,
}

func ValidStatus(status string) bool {
	return slices.Contains(allStatuses, status)
}

// IsTerminal reports whether a booking in this status has released its table.
func IsTerminal(status string) bool {
	return slices.Contains(terminalStatuses, status)
}

// TerminalStatuses returns the terminal set for store-level filtering.
func TerminalStatuses() []string {
	return slices.Clone(terminalStatuses)
}

// CancelledStatuses returns the two cancellation variants; cancelled bookings
// are dropped from the timeline entirely.
func CancelledStatuses() []string {
	return slices.Clone(cancelledStatuses)
}

type Booking struct {
	ID          string    `db:"id"`
	TableID     string    `db:"table_id"`
	BookingDate time.Time `db:"booking_date"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	PartySize   int       `db:"party_size"`
	GuestName   string    `db:"guest_name"`
	Status      string    `db:"status"`
	model.Metadata
}

// Span anchors the booking's clock times onto its date in the venue's local
// time, yielding the absolute half-open interval the booking occupies.
func (b *Booking) Span() (start, end time.Time) {
	loc := timezone.GetLocation()
	date := b.BookingDate

	start = time.Date(date.Year(), date.Month(), date.Day(), b.StartTime.Hour(), b.StartTime.Minute(), 0, 0, loc)
	end = time.Date(date.Year(), date.Month(), date.Day(), b.EndTime.Hour(), b.EndTime.Minute(), 0, 0, loc)

	return start, end
}
