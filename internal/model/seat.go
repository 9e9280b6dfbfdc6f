package model

import "time"

// Seat describes a physical seat within a carriage.  Seats are
// labeled by a letter plus a zero-padded row number, e.g. "A01" or
// "D10".  Seats are generated once per train and never regenerated
// while any already exist (idempotent provisioning).
//
// Fields:
//  ID         – primary key identifier.
//  CarriageID – carriage to which this seat belongs.
//  SeatNumber – seat label in <Letter><Row> form.
//  CreatedAt  – creation timestamp.
type Seat struct {
	ID         string    // seats.id
	CarriageID string    // seats.carriage_id
	SeatNumber string    // seats.seat_number (e.g. "A01")
	CreatedAt  time.Time // seats.created_at
}
