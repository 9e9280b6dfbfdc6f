package allocation

import (
	"context"
	"time"

	"github.com/iliyamo/railway-seat-reservation/internal/model"
)

// HoldRequest carries everything the Store needs to persist one lock
// acquisition: one PENDING booking plus one reservation per seat.
type HoldRequest struct {
	TripID        string
	SeatIDs       []string
	FromStopOrder uint32
	ToStopOrder   uint32
	HolderToken   string
	Now           time.Time // acquisition time, used by the conflict check
	ExpiresAt     time.Time
}

// Store is the persistence contract of the allocation engine.  The
// MySQL implementation lives in internal/repository; tests use an
// in-memory fake.
//
// CreateHold must run its conflict check and its inserts in a single
// transaction: if any requested seat already has a reservation for an
// overlapping segment on a PENDING (unexpired) or CONFIRMED booking,
// it returns ErrSeatConflict and persists nothing.
type Store interface {
	// TripMaxStop returns the highest stop order of the trip's route,
	// or ErrTripNotFound when the trip does not exist.
	TripMaxStop(ctx context.Context, tripID string) (uint32, error)

	// TripSeats returns every seat of the trip's train together with
	// its carriage, ordered by carriage index then seat number.
	TripSeats(ctx context.Context, tripID string) ([]TripSeat, error)

	// OverlappingReservations returns all reservations on the trip
	// whose segment overlaps [from, to), joined with their booking
	// status and lock expiry.
	OverlappingReservations(ctx context.Context, tripID string, from, to uint32) ([]ReservationView, error)

	// CreateHold atomically checks for conflicts and persists the
	// booking and its reservations.
	CreateHold(ctx context.Context, req HoldRequest) ([]model.SeatReservation, error)

	// ReleaseHold deletes reservations on PENDING bookings for the
	// given trip and seats, marking bookings left empty as EXPIRED.
	// It returns the number of reservations removed.
	ReleaseHold(ctx context.Context, tripID string, seatIDs []string) (int, error)

	// ReleaseExpired reclaims every PENDING booking whose expiry is
	// before now: its reservations are deleted and its status set to
	// EXPIRED.  It returns the number of bookings reclaimed.  A
	// failure on one booking must not abort the sweep.
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}
