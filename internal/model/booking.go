package model

import "time"

// Booking status values.  PENDING bookings carry an expiry and are
// reclaimed by the lock manager once it passes; the transition to
// CONFIRMED is performed by the external booking component, never by
// this service.  CONFIRMED, CANCELLED and EXPIRED are terminal.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingExpired   = "EXPIRED"
)

// Booking aggregates one or more seat reservations created under a
// single lock acquisition.  While PENDING it represents a time-boxed
// hold: ExpiresAt records when the hold lapses and the seats become
// reclaimable.
//
// Fields:
//  ID          – primary key identifier.
//  TripID      – trip on which the seats are held.
//  HolderToken – opaque token identifying the holder (no user account
//                is required to place a hold).
//  Status      – one of the Booking* status constants.
//  CreatedAt   – creation timestamp.
//  ExpiresAt   – when a PENDING hold lapses (nil once confirmed).
type Booking struct {
	ID          string     // bookings.id
	TripID      string     // bookings.trip_id
	HolderToken string     // bookings.holder_token
	Status      string     // bookings.status
	CreatedAt   time.Time  // bookings.created_at
	ExpiresAt   *time.Time // bookings.expires_at (nullable)
}
