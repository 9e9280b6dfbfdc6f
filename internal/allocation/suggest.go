package allocation

import (
	"context"
	"sort"
	"strconv"
)

// Scoring weights for suggestion candidates.  A contiguous block
// dominates everything else; the carriage term rewards forward
// carriages.
const (
	contiguousBonus   = 50
	carriageBaseScore = 10
	perSeatScore      = 5
)

// Suggestion result reasons.
const (
	reasonNoSeats       = "No seats available for this segment."
	reasonContiguous    = "Contiguous seat group found."
	reasonBestAvailable = "Best available group found (not perfectly contiguous)."
	reasonFallback      = "No contiguous group found. Returning closest available seats."
)

// candidateSeat is an available seat tagged with its parsed position.
type candidateSeat struct {
	SuggestionSeat
	row    int
	letter byte
}

// groupCandidate is one scored window of the sliding scan.
type groupCandidate struct {
	seats      []SuggestionSeat
	score      int
	contiguous bool
}

// SuggestSeats searches the availability projection for the best
// group of seatCount seats.  It slides a window across each
// carriage's available seats (sorted by row, then letter) and scores
// every window; a window is contiguous when all seats share one row
// and their letters form a run with step 1.  The highest score wins,
// ties resolving to the earliest window in scan order.  When no
// carriage holds seatCount available seats, the first seatCount
// available seats across the train are returned as a non-exact
// fallback.
func (s *Service) SuggestSeats(ctx context.Context, tripID string, from, to uint32, seatCount int) (*SuggestionResult, error) {
	if seatCount < 1 {
		return nil, ErrInvalidSeatCount
	}

	availability, err := s.GetAvailableSeats(ctx, tripID, from, to)
	if err != nil {
		return nil, err
	}

	carriages, all := availableCandidates(availability)
	if len(all) == 0 {
		return &SuggestionResult{Seats: []SuggestionSeat{}, Reason: reasonNoSeats}, nil
	}

	var best *groupCandidate
	for _, cg := range carriages {
		if len(cg.seats) < seatCount {
			continue
		}
		for i := 0; i+seatCount <= len(cg.seats); i++ {
			window := cg.seats[i : i+seatCount]
			contiguous := sameRow(window) && consecutiveLetters(window)

			score := perSeatScore * seatCount
			score += carriageBaseScore - int(cg.index)
			if contiguous {
				score += contiguousBonus
			}

			// Strict comparison keeps the first window on ties, so the
			// deterministic scan order is the tie break.
			if best == nil || score > best.score {
				seats := make([]SuggestionSeat, seatCount)
				for j, cs := range window {
					seats[j] = cs.SuggestionSeat
				}
				best = &groupCandidate{seats: seats, score: score, contiguous: contiguous}
			}
		}
	}

	if best == nil {
		// No single carriage can seat the whole party: best-effort
		// scattered fallback ordered by carriage, row, letter.
		n := seatCount
		if n > len(all) {
			n = len(all)
		}
		seats := make([]SuggestionSeat, n)
		for i := 0; i < n; i++ {
			seats[i] = all[i].SuggestionSeat
		}
		return &SuggestionResult{Seats: seats, ExactMatch: false, Reason: reasonFallback}, nil
	}

	reason := reasonBestAvailable
	if best.contiguous {
		reason = reasonContiguous
	}
	return &SuggestionResult{Seats: best.seats, ExactMatch: best.contiguous, Reason: reason}, nil
}

// carriageCandidates is the available seats of one carriage, sorted
// by row then letter.
type carriageCandidates struct {
	index uint32
	seats []candidateSeat
}

// availableCandidates flattens an availability projection to the
// available seats, both grouped per carriage (in index order, each
// group sorted by row then letter) and as one global list ordered by
// carriage, row, letter.  Seats with unparseable numbers are skipped.
func availableCandidates(availability []CarriageAvailability) ([]carriageCandidates, []candidateSeat) {
	carriages := make([]carriageCandidates, 0, len(availability))
	var all []candidateSeat
	for _, cg := range availability {
		group := carriageCandidates{index: cg.Carriage}
		for _, seat := range cg.Seats {
			if seat.Status != StatusAvailable {
				continue
			}
			letter, row, ok := parseSeatNumber(seat.SeatNumber)
			if !ok {
				continue
			}
			group.seats = append(group.seats, candidateSeat{
				SuggestionSeat: SuggestionSeat{
					SeatID:        seat.SeatID,
					SeatNumber:    seat.SeatNumber,
					CarriageIndex: cg.Carriage,
				},
				row:    row,
				letter: letter,
			})
		}
		sort.Slice(group.seats, func(i, j int) bool {
			if group.seats[i].row != group.seats[j].row {
				return group.seats[i].row < group.seats[j].row
			}
			return group.seats[i].letter < group.seats[j].letter
		})
		carriages = append(carriages, group)
		all = append(all, group.seats...)
	}
	// Availability is already ordered by carriage index, so appending
	// the sorted groups keeps the global list in carriage/row/letter
	// order.
	return carriages, all
}

// parseSeatNumber splits a "<Letter><Row>" label such as "A01" into
// its letter and numeric row.
func parseSeatNumber(num string) (byte, int, bool) {
	if len(num) < 2 {
		return 0, 0, false
	}
	letter := num[0]
	if letter < 'A' || letter > 'Z' {
		return 0, 0, false
	}
	row, err := strconv.Atoi(num[1:])
	if err != nil {
		return 0, 0, false
	}
	return letter, row, true
}

// sameRow reports whether every seat of the window sits in one row.
func sameRow(window []candidateSeat) bool {
	for _, cs := range window[1:] {
		if cs.row != window[0].row {
			return false
		}
	}
	return true
}

// consecutiveLetters reports whether the window's letters, sorted,
// form a run with step 1 between neighbours.
func consecutiveLetters(window []candidateSeat) bool {
	letters := make([]byte, len(window))
	for i, cs := range window {
		letters[i] = cs.letter
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	for i := 1; i < len(letters); i++ {
		if letters[i] != letters[i-1]+1 {
			return false
		}
	}
	return true
}
