package allocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/railway-seat-reservation/internal/model"
)

// newTestEngine builds a service over a fresh in-memory store with a
// single 8-stop trip and one carriage of four seats.
func newTestEngine() (*Service, *memStore, *memClock) {
	store := newMemStore()
	clock := newMemClock()
	store.addTrip("trip1", 8)
	store.addCarriage("trip1", 1, "A01", "B01", "C01", "D01")
	return NewService(store, clock), store, clock
}

// seatStatus finds a seat's projected status in an availability result.
func seatStatus(t *testing.T, availability []CarriageAvailability, seatID string) SeatStatus {
	t.Helper()
	for _, cg := range availability {
		for _, seat := range cg.Seats {
			if seat.SeatID == seatID {
				return seat.Status
			}
		}
	}
	t.Fatalf("seat %s not present in availability", seatID)
	return ""
}

func TestLockSeatsRoundTrip(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	reservations, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01", "c1-B01"}, 1, 4, "holder-a")
	if err != nil {
		t.Fatalf("expected lock to succeed, got: %v", err)
	}
	if len(reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(reservations))
	}

	availability, err := svc.GetAvailableSeats(ctx, "trip1", 1, 4)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if got := seatStatus(t, availability, "c1-A01"); got != StatusHeld {
		t.Errorf("expected A01 held, got %s", got)
	}
	if got := seatStatus(t, availability, "c1-C01"); got != StatusAvailable {
		t.Errorf("expected C01 available, got %s", got)
	}
}

func TestLockSeatsConflict(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 4, "holder-a"); err != nil {
		t.Fatalf("first lock failed: %v", err)
	}
	_, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 2, 5, "holder-b")
	if !errors.Is(err, ErrSeatConflict) {
		t.Fatalf("expected ErrSeatConflict, got %v", err)
	}
}

func TestLockSeatsSegmentIndependence(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 3, "holder-a"); err != nil {
		t.Fatalf("first lock failed: %v", err)
	}

	// The disjoint segment starting where the first ends must still
	// see the seat as available and be lockable.
	availability, err := svc.GetAvailableSeats(ctx, "trip1", 3, 6)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if got := seatStatus(t, availability, "c1-A01"); got != StatusAvailable {
		t.Errorf("expected A01 available on (3,6), got %s", got)
	}
	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 3, 6, "holder-b"); err != nil {
		t.Errorf("expected disjoint lock to succeed, got: %v", err)
	}
}

func TestLockSeatsValidation(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := svc.LockSeats(ctx, "missing", []string{"c1-A01"}, 1, 4, "h"); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("unknown trip: expected ErrTripNotFound, got %v", err)
	}
	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 4, 4, "h"); !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("zero-length segment: expected ErrInvalidSegment, got %v", err)
	}
	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 40, "h"); !errors.Is(err, ErrInvalidSegment) {
		t.Errorf("segment past route end: expected ErrInvalidSegment, got %v", err)
	}
	if _, err := svc.LockSeats(ctx, "trip1", nil, 1, 4, "h"); !errors.Is(err, ErrNoSeats) {
		t.Errorf("no seats: expected ErrNoSeats, got %v", err)
	}
}

func TestLockSeatsDeduplicatesSeatIDs(t *testing.T) {
	svc, _, _ := newTestEngine()
	reservations, err := svc.LockSeats(context.Background(), "trip1",
		[]string{"c1-A01", "c1-A01", "", "c1-B01"}, 1, 4, "holder-a")
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if len(reservations) != 2 {
		t.Errorf("expected 2 reservations after dedup, got %d", len(reservations))
	}
}

func TestUnlockSeats(t *testing.T) {
	svc, store, _ := newTestEngine()
	ctx := context.Background()

	reservations, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01", "c1-B01"}, 1, 4, "holder-a")
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	released, err := svc.UnlockSeats(ctx, "trip1", []string{"c1-A01", "c1-B01"})
	if err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if released != 2 {
		t.Errorf("expected 2 released, got %d", released)
	}

	// The emptied booking flips to EXPIRED and the seats read available.
	if got := store.bookings[reservations[0].BookingID].Status; got != model.BookingExpired {
		t.Errorf("expected booking EXPIRED after full unlock, got %s", got)
	}
	availability, err := svc.GetAvailableSeats(ctx, "trip1", 1, 4)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if got := seatStatus(t, availability, "c1-A01"); got != StatusAvailable {
		t.Errorf("expected A01 available after unlock, got %s", got)
	}

	// Releasing again is "nothing to unlock", not an error.
	released, err = svc.UnlockSeats(ctx, "trip1", []string{"c1-A01"})
	if err != nil {
		t.Fatalf("second unlock errored: %v", err)
	}
	if released != 0 {
		t.Errorf("expected 0 released on second unlock, got %d", released)
	}
}

func TestExpiryReclamation(t *testing.T) {
	svc, store, clock := newTestEngine()
	ctx := context.Background()

	reservations, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 4, "holder-a")
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	bookingID := reservations[0].BookingID

	// Just before expiry the hold is still live.
	clock.Advance(4 * time.Minute)
	availability, err := svc.GetAvailableSeats(ctx, "trip1", 1, 4)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if got := seatStatus(t, availability, "c1-A01"); got != StatusHeld {
		t.Errorf("expected A01 held before expiry, got %s", got)
	}

	// Past expiry the projection reclaims lazily: the seat reads
	// available and the booking is physically expired.
	clock.Advance(2 * time.Minute)
	availability, err = svc.GetAvailableSeats(ctx, "trip1", 1, 4)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if got := seatStatus(t, availability, "c1-A01"); got != StatusAvailable {
		t.Errorf("expected A01 available after expiry, got %s", got)
	}
	if got := store.bookings[bookingID].Status; got != model.BookingExpired {
		t.Errorf("expected booking EXPIRED after lazy reclaim, got %s", got)
	}
	if n := store.bookingReservationCount(bookingID); n != 0 {
		t.Errorf("expected reservations removed, %d remain", n)
	}

	// Reclamation is idempotent.
	reclaimed, err := svc.ReleaseExpiredLocks(ctx)
	if err != nil {
		t.Fatalf("release expired failed: %v", err)
	}
	if reclaimed != 0 {
		t.Errorf("expected 0 reclaimed on second sweep, got %d", reclaimed)
	}
}

func TestReclaimLeavesConfirmedBookingsAlone(t *testing.T) {
	svc, store, clock := newTestEngine()
	ctx := context.Background()

	reservations, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 4, "holder-a")
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	store.confirm(reservations[0].BookingID)

	clock.Advance(10 * time.Minute)
	reclaimed, err := svc.ReleaseExpiredLocks(ctx)
	if err != nil {
		t.Fatalf("release expired failed: %v", err)
	}
	if reclaimed != 0 {
		t.Errorf("expected confirmed booking untouched, reclaimed %d", reclaimed)
	}

	availability, err := svc.GetAvailableSeats(ctx, "trip1", 1, 4)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if got := seatStatus(t, availability, "c1-A01"); got != StatusBooked {
		t.Errorf("expected A01 booked, got %s", got)
	}
}

func TestExpiredLockDoesNotBlockNewLock(t *testing.T) {
	svc, _, clock := newTestEngine()
	ctx := context.Background()

	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 4, "holder-a"); err != nil {
		t.Fatalf("first lock failed: %v", err)
	}
	clock.Advance(6 * time.Minute)

	// The stale hold must not conflict even though no reclaim ran in
	// between.
	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01"}, 1, 4, "holder-b"); err != nil {
		t.Errorf("expected lock after expiry to succeed, got: %v", err)
	}
}

func TestClassifySeatStalePending(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	// A stale PENDING reservation counts as available even when the
	// sweep has not removed it yet.
	stale := []ReservationView{{
		BookingStatus: model.BookingPending,
		LockExpiresAt: now.Add(-time.Minute),
	}}
	if got := classifySeat(stale, now); got != StatusAvailable {
		t.Errorf("stale pending: expected available, got %s", got)
	}

	// A confirmed booking wins over a live hold on the same seat.
	mixed := []ReservationView{
		{BookingStatus: model.BookingPending, LockExpiresAt: now.Add(time.Minute)},
		{BookingStatus: model.BookingConfirmed},
	}
	if got := classifySeat(mixed, now); got != StatusBooked {
		t.Errorf("mixed: expected booked, got %s", got)
	}
}

func TestAvailabilityOrdering(t *testing.T) {
	store := newMemStore()
	clock := newMemClock()
	store.addTrip("trip1", 8)
	store.addCarriage("trip1", 2, "B01", "A01")
	store.addCarriage("trip1", 1, "D01", "C01")
	svc := NewService(store, clock)

	availability, err := svc.GetAvailableSeats(context.Background(), "trip1", 1, 4)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if len(availability) != 2 {
		t.Fatalf("expected 2 carriages, got %d", len(availability))
	}
	if availability[0].Carriage != 1 || availability[1].Carriage != 2 {
		t.Errorf("expected carriages ordered 1,2; got %d,%d", availability[0].Carriage, availability[1].Carriage)
	}
	if availability[0].Seats[0].SeatNumber != "C01" || availability[1].Seats[0].SeatNumber != "A01" {
		t.Errorf("expected seats sorted by seat number within each carriage")
	}
}
