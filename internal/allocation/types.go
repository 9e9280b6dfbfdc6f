package allocation

import "time"

// SeatStatus is the projected availability of one seat for one
// requested segment.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusHeld      SeatStatus = "held"
	StatusBooked    SeatStatus = "booked"
)

// SeatAvailability is the per-seat entry of an availability
// projection.
type SeatAvailability struct {
	SeatID     string     `json:"seat_id"`
	SeatNumber string     `json:"seat_number"`
	Status     SeatStatus `json:"status"`
}

// CarriageAvailability groups the seat availability of one carriage,
// identified by its 1-based index in the train.
type CarriageAvailability struct {
	Carriage uint32             `json:"carriage"`
	Seats    []SeatAvailability `json:"seats"`
}

// SuggestionSeat is one seat of a suggestion result.
type SuggestionSeat struct {
	SeatID        string `json:"seat_id"`
	SeatNumber    string `json:"seat_number"`
	CarriageIndex uint32 `json:"carriage_index"`
}

// SuggestionResult is the outcome of a seat suggestion search.
// ExactMatch is true only when the returned seats form a contiguous
// block (same row, consecutive letters) in a single carriage.  When
// no group can be suggested the seat list is empty and Reason says
// why; "no seats" conditions are not errors.
type SuggestionResult struct {
	Seats      []SuggestionSeat `json:"seats"`
	ExactMatch bool             `json:"exact_match"`
	Reason     string           `json:"reason"`
}

// TripSeat is the flattened seat inventory row the Store returns for
// a trip: the seat plus the carriage it sits in.
type TripSeat struct {
	SeatID        string
	SeatNumber    string
	CarriageID    string
	CarriageIndex uint32
}

// ReservationView is the slice of reservation state the projector
// needs: the occupied segment plus the owning booking's status and
// lock expiry.
type ReservationView struct {
	SeatID        string
	FromStopOrder uint32
	ToStopOrder   uint32
	BookingStatus string
	LockExpiresAt time.Time
}
