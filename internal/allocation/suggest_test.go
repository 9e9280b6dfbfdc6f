package allocation

import (
	"context"
	"errors"
	"testing"
)

func seatNumbers(seats []SuggestionSeat) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.SeatNumber
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSuggestContiguousRow(t *testing.T) {
	svc, _, _ := newTestEngine()

	result, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, 4)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if !result.ExactMatch {
		t.Errorf("expected exact match, got reason %q", result.Reason)
	}
	if got := seatNumbers(result.Seats); !equalStrings(got, []string{"A01", "B01", "C01", "D01"}) {
		t.Errorf("expected A01,B01,C01,D01; got %v", got)
	}
}

func TestSuggestTieBreaksToFirstWindow(t *testing.T) {
	svc, _, _ := newTestEngine()

	// Both (A01,B01) and (B01,C01) score identically; the earliest
	// window in scan order wins.
	result, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, 2)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if got := seatNumbers(result.Seats); !equalStrings(got, []string{"A01", "B01"}) {
		t.Errorf("expected A01,B01; got %v", got)
	}
}

func TestSuggestSkipsHeldSeats(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-B01"}, 1, 4, "holder-a"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	result, err := svc.SuggestSeats(ctx, "trip1", 1, 4, 3)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if result.ExactMatch {
		t.Error("expected non-exact match with the row broken by a hold")
	}
	if got := seatNumbers(result.Seats); !equalStrings(got, []string{"A01", "C01", "D01"}) {
		t.Errorf("expected A01,C01,D01; got %v", got)
	}
}

func TestSuggestContiguityBeatsCarriagePosition(t *testing.T) {
	store := newMemStore()
	store.addTrip("trip1", 8)
	store.addCarriage("trip1", 1, "A01", "C01")
	store.addCarriage("trip1", 2, "A01", "B01")
	svc := NewService(store, newMemClock())

	result, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, 2)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if !result.ExactMatch {
		t.Errorf("expected exact match, got reason %q", result.Reason)
	}
	if result.Seats[0].CarriageIndex != 2 {
		t.Errorf("expected contiguous pair from carriage 2, got carriage %d", result.Seats[0].CarriageIndex)
	}
}

func TestSuggestPrefersLowerCarriage(t *testing.T) {
	store := newMemStore()
	store.addTrip("trip1", 8)
	store.addCarriage("trip1", 1, "A01", "B01")
	store.addCarriage("trip1", 2, "A01", "B01")
	svc := NewService(store, newMemClock())

	result, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, 2)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if result.Seats[0].CarriageIndex != 1 {
		t.Errorf("expected pair from carriage 1, got carriage %d", result.Seats[0].CarriageIndex)
	}
}

func TestSuggestScatteredFallback(t *testing.T) {
	store := newMemStore()
	store.addTrip("trip1", 8)
	store.addCarriage("trip1", 1, "A01")
	store.addCarriage("trip1", 2, "A01", "B01")
	svc := NewService(store, newMemClock())

	// No single carriage seats three, so the fallback scatters the
	// group across carriages in carriage/row/letter order.
	result, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, 3)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if result.ExactMatch {
		t.Error("expected scattered fallback to be non-exact")
	}
	if got := seatNumbers(result.Seats); !equalStrings(got, []string{"A01", "A01", "B01"}) {
		t.Errorf("expected fallback A01,A01,B01 across carriages; got %v", got)
	}
	if result.Seats[0].CarriageIndex != 1 || result.Seats[1].CarriageIndex != 2 {
		t.Error("expected fallback ordered by carriage index")
	}
}

func TestSuggestFallbackCapsAtAvailable(t *testing.T) {
	store := newMemStore()
	store.addTrip("trip1", 8)
	store.addCarriage("trip1", 1, "A01", "B01")
	svc := NewService(store, newMemClock())

	result, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, 5)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if result.ExactMatch {
		t.Error("expected partial result to be non-exact")
	}
	if len(result.Seats) != 2 {
		t.Errorf("expected the 2 available seats, got %d", len(result.Seats))
	}
}

func TestSuggestNoSeats(t *testing.T) {
	svc, _, _ := newTestEngine()
	ctx := context.Background()

	if _, err := svc.LockSeats(ctx, "trip1", []string{"c1-A01", "c1-B01", "c1-C01", "c1-D01"}, 1, 4, "holder-a"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}

	result, err := svc.SuggestSeats(ctx, "trip1", 1, 4, 2)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if len(result.Seats) != 0 || result.ExactMatch {
		t.Errorf("expected empty non-exact result, got %+v", result)
	}
	if result.Reason != reasonNoSeats {
		t.Errorf("unexpected reason %q", result.Reason)
	}
}

func TestSuggestInvalidCount(t *testing.T) {
	svc, _, _ := newTestEngine()
	for _, count := range []int{0, -1} {
		if _, err := svc.SuggestSeats(context.Background(), "trip1", 1, 4, count); !errors.Is(err, ErrInvalidSeatCount) {
			t.Errorf("count %d: expected ErrInvalidSeatCount, got %v", count, err)
		}
	}
}

func TestParseSeatNumber(t *testing.T) {
	cases := []struct {
		in     string
		letter byte
		row    int
		ok     bool
	}{
		{"A01", 'A', 1, true},
		{"D10", 'D', 10, true},
		{"Z99", 'Z', 99, true},
		{"a01", 0, 0, false},
		{"A", 0, 0, false},
		{"Axy", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		letter, row, ok := parseSeatNumber(tc.in)
		if ok != tc.ok || letter != tc.letter || row != tc.row {
			t.Errorf("parseSeatNumber(%q) = (%c, %d, %v); want (%c, %d, %v)",
				tc.in, letter, row, ok, tc.letter, tc.row, tc.ok)
		}
	}
}
