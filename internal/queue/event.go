// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatsLockedEvent is published when a lock acquisition succeeds.  The
// booking component consumes it to drive the passenger-details and
// payment flow before the hold expires; it carries enough information
// that consumers need not query the primary database.
type SeatsLockedEvent struct {
	BookingID     string   `json:"booking_id"`
	TripID        string   `json:"trip_id"`
	HolderToken   string   `json:"holder_token"`
	SeatIDs       []string `json:"seat_ids"`
	FromStopOrder uint32   `json:"from_stop_order"`
	ToStopOrder   uint32   `json:"to_stop_order"`
	ExpiresAt     string   `json:"expires_at"`
	LockedAt      string   `json:"locked_at"`
}

// LocksReclaimedEvent is published after a reclamation sweep that
// expired at least one booking, so downstream consumers can abandon
// checkout flows for holds that no longer exist.
type LocksReclaimedEvent struct {
	Reclaimed   int    `json:"reclaimed"`
	ReclaimedAt string `json:"reclaimed_at"`
}
