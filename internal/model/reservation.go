package model

import "time"

// SeatReservation links one seat to one booking for exactly one
// travel segment on a trip.  Segments are half-open stop-order
// ranges [FromStopOrder, ToStopOrder); two reservations for the same
// seat may coexist on a trip as long as their segments do not
// overlap.  A reservation is deleted outright (not soft-deleted)
// when its booking is unlocked, cancelled or reclaimed as expired.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking that owns this reservation.
//  SeatID        – seat being reserved.
//  FromStopOrder – first stop order of the occupied segment.
//  ToStopOrder   – stop order at which the seat is vacated (exclusive).
//  LockExpiresAt – when the hold on this seat lapses.
type SeatReservation struct {
	ID            string    // seat_reservations.id
	BookingID     string    // seat_reservations.booking_id
	SeatID        string    // seat_reservations.seat_id
	FromStopOrder uint32    // seat_reservations.from_stop_order
	ToStopOrder   uint32    // seat_reservations.to_stop_order
	LockExpiresAt time.Time // seat_reservations.lock_expires_at
}
