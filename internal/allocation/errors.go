// Package allocation implements the seat reservation and allocation
// engine: segment overlap arithmetic, availability projection over
// stop-order ranges, time-boxed seat locks with lazy reclamation, and
// the contiguous seat suggestion search.  Persistence is abstracted
// behind the Store interface so the engine itself stays free of SQL.
package allocation

import "errors"

// ErrTripNotFound is returned when the referenced trip does not
// exist.  Handlers should translate this into an HTTP 404 response.
var ErrTripNotFound = errors.New("trip not found")

// ErrInvalidSegment is returned when a requested segment is inverted,
// zero-length or reaches outside the trip's stop sequence.  Handlers
// should translate this into an HTTP 400 response.
var ErrInvalidSegment = errors.New("invalid stop segment")

// ErrSeatConflict is returned when a lock is requested for a seat
// that is already held or booked for an overlapping segment.  The
// check and the insert run in a single transaction, so two
// concurrent callers cannot both succeed.  Handlers should translate
// this into an HTTP 409 response.
var ErrSeatConflict = errors.New("seat already held or booked for an overlapping segment")

// ErrInvalidSeatCount is returned when a suggestion is requested for
// fewer than one seat.
var ErrInvalidSeatCount = errors.New("seat count must be at least 1")

// ErrNoSeats is returned when a lock request names no valid seats.
var ErrNoSeats = errors.New("no seat ids provided")
