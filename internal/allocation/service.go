package allocation

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/railway-seat-reservation/internal/model"
)

// DefaultHoldTTL is how long a seat lock lives before it may be
// reclaimed.
const DefaultHoldTTL = 5 * time.Minute

// Service is the seat allocation engine.  It combines the inventory
// model, the segment overlap engine and the lock manager into the
// availability and suggestion call contracts exposed to handlers.
type Service struct {
	store   Store
	clock   Clock
	holdTTL time.Duration
}

// Option customises a Service.
type Option func(*Service)

// WithHoldTTL overrides the default lock lifetime.
func WithHoldTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// NewService constructs the engine.  Both store and clock must be
// non-nil.
func NewService(store Store, clk Clock, opts ...Option) *Service {
	if store == nil || clk == nil {
		panic("nil store or clock passed to allocation.NewService")
	}
	s := &Service{store: store, clock: clk, holdTTL: DefaultHoldTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAvailableSeats projects per-carriage seat availability for a
// trip and segment.  Expired locks are reclaimed first so stale
// holds never appear as held.  Carriages are ordered by index and
// seats by seat number; the projection is idempotent.
func (s *Service) GetAvailableSeats(ctx context.Context, tripID string, from, to uint32) ([]CarriageAvailability, error) {
	if _, err := s.ReleaseExpiredLocks(ctx); err != nil {
		return nil, err
	}

	maxStop, err := s.store.TripMaxStop(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := ValidateSegment(from, to, maxStop); err != nil {
		return nil, err
	}

	seats, err := s.store.TripSeats(ctx, tripID)
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.OverlappingReservations(ctx, tripID, from, to)
	if err != nil {
		return nil, err
	}

	// Index overlapping reservations by seat.  A seat may carry more
	// than one overlapping reservation only in degenerate data, but
	// the classification still picks the strongest status.
	bySeat := make(map[string][]ReservationView, len(reservations))
	for _, r := range reservations {
		bySeat[r.SeatID] = append(bySeat[r.SeatID], r)
	}

	now := s.clock.Now()
	grouped := make(map[uint32][]SeatAvailability)
	var indexes []uint32
	for _, seat := range seats {
		if _, ok := grouped[seat.CarriageIndex]; !ok {
			indexes = append(indexes, seat.CarriageIndex)
		}
		grouped[seat.CarriageIndex] = append(grouped[seat.CarriageIndex], SeatAvailability{
			SeatID:     seat.SeatID,
			SeatNumber: seat.SeatNumber,
			Status:     classifySeat(bySeat[seat.SeatID], now),
		})
	}

	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	result := make([]CarriageAvailability, 0, len(indexes))
	for _, idx := range indexes {
		carriageSeats := grouped[idx]
		sort.Slice(carriageSeats, func(i, j int) bool {
			return carriageSeats[i].SeatNumber < carriageSeats[j].SeatNumber
		})
		result = append(result, CarriageAvailability{Carriage: idx, Seats: carriageSeats})
	}
	return result, nil
}

// classifySeat derives a seat's status from its overlapping
// reservations.  A CONFIRMED booking wins over a live hold; a stale
// PENDING reservation counts as available even if the reclamation
// sweep has not caught it yet.
func classifySeat(views []ReservationView, now time.Time) SeatStatus {
	status := StatusAvailable
	for _, v := range views {
		switch v.BookingStatus {
		case model.BookingConfirmed:
			return StatusBooked
		case model.BookingPending:
			if v.LockExpiresAt.After(now) {
				status = StatusHeld
			}
		}
	}
	return status
}

// LockSeats places a time-boxed exclusive hold on the given seats for
// the segment [from, to).  It creates one PENDING booking expiring
// after the hold TTL plus one reservation per seat.  A seat already
// held or booked for an overlapping segment fails the whole request
// with ErrSeatConflict; nothing is persisted in that case.
func (s *Service) LockSeats(ctx context.Context, tripID string, seatIDs []string, from, to uint32, holderToken string) ([]model.SeatReservation, error) {
	maxStop, err := s.store.TripMaxStop(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := ValidateSegment(from, to, maxStop); err != nil {
		return nil, err
	}

	unique := dedupe(seatIDs)
	if len(unique) == 0 {
		return nil, ErrNoSeats
	}

	now := s.clock.Now()
	return s.store.CreateHold(ctx, HoldRequest{
		TripID:        tripID,
		SeatIDs:       unique,
		FromStopOrder: from,
		ToStopOrder:   to,
		HolderToken:   holderToken,
		Now:           now,
		ExpiresAt:     now.Add(s.holdTTL),
	})
}

// UnlockSeats releases pending holds on the given seats.  It returns
// the number of reservations removed; zero means there was nothing
// to unlock, which is not an error.
func (s *Service) UnlockSeats(ctx context.Context, tripID string, seatIDs []string) (int, error) {
	unique := dedupe(seatIDs)
	if len(unique) == 0 {
		return 0, ErrNoSeats
	}
	return s.store.ReleaseHold(ctx, tripID, unique)
}

// ReleaseExpiredLocks reclaims every lapsed PENDING booking.  It is
// idempotent and safe to call concurrently with lock and unlock
// operations; the availability projector invokes it on every read
// and the optional background sweeper calls the same entry point.
func (s *Service) ReleaseExpiredLocks(ctx context.Context) (int, error) {
	return s.store.ReleaseExpired(ctx, s.clock.Now())
}

// dedupe drops empty and repeated seat IDs while preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
