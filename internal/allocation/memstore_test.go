package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/railway-seat-reservation/internal/model"
)

// memClock is a manually advanced Clock for deterministic expiry tests.
type memClock struct {
	now time.Time
}

func newMemClock() *memClock {
	return &memClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *memClock) Now() time.Time { return c.now }
func (c *memClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// memStore is an in-memory Store implementation mirroring the MySQL
// store's semantics, including the transactional conflict check.
type memStore struct {
	trips        map[string]*memTrip
	bookings     map[string]*model.Booking
	reservations map[string]model.SeatReservation
	seq          int
}

type memTrip struct {
	maxStop uint32
	seats   []TripSeat
}

func newMemStore() *memStore {
	return &memStore{
		trips:        make(map[string]*memTrip),
		bookings:     make(map[string]*model.Booking),
		reservations: make(map[string]model.SeatReservation),
	}
}

// addTrip registers a trip with the given stop count and no seats.
func (m *memStore) addTrip(tripID string, maxStop uint32) {
	m.trips[tripID] = &memTrip{maxStop: maxStop}
}

// addCarriage adds seats to a trip's train.  Seat IDs are derived
// from the carriage index and seat number ("c1-A01").
func (m *memStore) addCarriage(tripID string, index uint32, seatNumbers ...string) {
	trip := m.trips[tripID]
	for _, num := range seatNumbers {
		trip.seats = append(trip.seats, TripSeat{
			SeatID:        fmt.Sprintf("c%d-%s", index, num),
			SeatNumber:    num,
			CarriageID:    fmt.Sprintf("carriage-%d", index),
			CarriageIndex: index,
		})
	}
}

// confirm promotes a booking, as the external booking component would.
func (m *memStore) confirm(bookingID string) {
	b := m.bookings[bookingID]
	b.Status = model.BookingConfirmed
	b.ExpiresAt = nil
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

func (m *memStore) TripMaxStop(_ context.Context, tripID string) (uint32, error) {
	trip, ok := m.trips[tripID]
	if !ok {
		return 0, ErrTripNotFound
	}
	return trip.maxStop, nil
}

func (m *memStore) TripSeats(_ context.Context, tripID string) ([]TripSeat, error) {
	trip, ok := m.trips[tripID]
	if !ok {
		return nil, ErrTripNotFound
	}
	return append([]TripSeat(nil), trip.seats...), nil
}

func (m *memStore) OverlappingReservations(_ context.Context, tripID string, from, to uint32) ([]ReservationView, error) {
	var views []ReservationView
	for _, res := range m.reservations {
		b := m.bookings[res.BookingID]
		if b.TripID != tripID {
			continue
		}
		if b.Status != model.BookingPending && b.Status != model.BookingConfirmed {
			continue
		}
		if !Overlaps(res.FromStopOrder, res.ToStopOrder, from, to) {
			continue
		}
		views = append(views, ReservationView{
			SeatID:        res.SeatID,
			FromStopOrder: res.FromStopOrder,
			ToStopOrder:   res.ToStopOrder,
			BookingStatus: b.Status,
			LockExpiresAt: res.LockExpiresAt,
		})
	}
	return views, nil
}

func (m *memStore) CreateHold(_ context.Context, req HoldRequest) ([]model.SeatReservation, error) {
	requested := make(map[string]struct{}, len(req.SeatIDs))
	for _, id := range req.SeatIDs {
		requested[id] = struct{}{}
	}
	for _, res := range m.reservations {
		if _, ok := requested[res.SeatID]; !ok {
			continue
		}
		b := m.bookings[res.BookingID]
		if b.TripID != req.TripID {
			continue
		}
		if !Overlaps(res.FromStopOrder, res.ToStopOrder, req.FromStopOrder, req.ToStopOrder) {
			continue
		}
		if b.Status == model.BookingConfirmed ||
			(b.Status == model.BookingPending && res.LockExpiresAt.After(req.Now)) {
			return nil, ErrSeatConflict
		}
	}

	expires := req.ExpiresAt
	booking := &model.Booking{
		ID:          m.nextID("bk"),
		TripID:      req.TripID,
		HolderToken: req.HolderToken,
		Status:      model.BookingPending,
		CreatedAt:   req.Now,
		ExpiresAt:   &expires,
	}
	m.bookings[booking.ID] = booking

	out := make([]model.SeatReservation, 0, len(req.SeatIDs))
	for _, seatID := range req.SeatIDs {
		res := model.SeatReservation{
			ID:            m.nextID("rs"),
			BookingID:     booking.ID,
			SeatID:        seatID,
			FromStopOrder: req.FromStopOrder,
			ToStopOrder:   req.ToStopOrder,
			LockExpiresAt: expires,
		}
		m.reservations[res.ID] = res
		out = append(out, res)
	}
	return out, nil
}

func (m *memStore) ReleaseHold(_ context.Context, tripID string, seatIDs []string) (int, error) {
	requested := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = struct{}{}
	}
	released := 0
	touched := make(map[string]struct{})
	for id, res := range m.reservations {
		b := m.bookings[res.BookingID]
		if b.TripID != tripID || b.Status != model.BookingPending {
			continue
		}
		if _, ok := requested[res.SeatID]; !ok {
			continue
		}
		delete(m.reservations, id)
		touched[res.BookingID] = struct{}{}
		released++
	}
	for bookingID := range touched {
		if m.bookingReservationCount(bookingID) == 0 {
			m.bookings[bookingID].Status = model.BookingExpired
		}
	}
	return released, nil
}

func (m *memStore) ReleaseExpired(_ context.Context, now time.Time) (int, error) {
	reclaimed := 0
	for _, b := range m.bookings {
		if b.Status != model.BookingPending || b.ExpiresAt == nil || !b.ExpiresAt.Before(now) {
			continue
		}
		for id, res := range m.reservations {
			if res.BookingID == b.ID {
				delete(m.reservations, id)
			}
		}
		b.Status = model.BookingExpired
		reclaimed++
	}
	return reclaimed, nil
}

func (m *memStore) bookingReservationCount(bookingID string) int {
	n := 0
	for _, res := range m.reservations {
		if res.BookingID == bookingID {
			n++
		}
	}
	return n
}
