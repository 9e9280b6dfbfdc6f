package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/railway-seat-reservation/internal/allocation"
	"github.com/iliyamo/railway-seat-reservation/internal/model"
)

// AllocationStore is the MySQL implementation of allocation.Store.
// It owns the bookings and seat_reservations tables and the read
// queries the availability projector needs.  All timestamps are UTC;
// callers pass the engine's clock reading rather than relying on the
// database wall clock so tests and the service agree on "now".
type AllocationStore struct {
	db *sql.DB
}

// NewAllocationStore constructs an AllocationStore bound to the
// provided database.
func NewAllocationStore(db *sql.DB) *AllocationStore {
	return &AllocationStore{db: db}
}

// TripMaxStop returns the highest stop order on the trip's route.
// The GROUP BY makes the aggregate return no rows for a missing
// trip, which maps to allocation.ErrTripNotFound.
func (r *AllocationStore) TripMaxStop(ctx context.Context, tripID string) (uint32, error) {
	const q = `SELECT COALESCE(MAX(ts.stop_order), 0)
	           FROM trips t
	           LEFT JOIN trip_stops ts ON ts.trip_id = t.id
	           WHERE t.id = ?
	           GROUP BY t.id`
	var maxStop uint32
	err := r.db.QueryRowContext(ctx, q, tripID).Scan(&maxStop)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, allocation.ErrTripNotFound
		}
		return 0, err
	}
	return maxStop, nil
}

// TripSeats returns every seat of the trip's train joined with its
// carriage index, ordered by carriage index then seat number.
func (r *AllocationStore) TripSeats(ctx context.Context, tripID string) ([]allocation.TripSeat, error) {
	const q = `SELECT s.id, s.seat_number, s.carriage_id, c.idx
	           FROM trips t
	           JOIN carriages c ON c.train_id = t.train_id
	           JOIN seats s ON s.carriage_id = c.id
	           WHERE t.id = ?
	           ORDER BY c.idx, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []allocation.TripSeat
	for rows.Next() {
		var s allocation.TripSeat
		if err := rows.Scan(&s.SeatID, &s.SeatNumber, &s.CarriageID, &s.CarriageIndex); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// OverlappingReservations returns the reservations on the trip whose
// half-open segment intersects [from, to), together with the owning
// booking's status and the lock expiry.  Reservations of cancelled
// or expired bookings never influence availability, so they are
// filtered here.
func (r *AllocationStore) OverlappingReservations(ctx context.Context, tripID string, from, to uint32) ([]allocation.ReservationView, error) {
	const q = `SELECT rs.seat_id, rs.from_stop_order, rs.to_stop_order, b.status, rs.lock_expires_at
	           FROM seat_reservations rs
	           JOIN bookings b ON b.id = rs.booking_id
	           WHERE b.trip_id = ?
	             AND rs.from_stop_order < ?
	             AND rs.to_stop_order > ?
	             AND b.status IN (?, ?)`
	rows, err := r.db.QueryContext(ctx, q, tripID, to, from, model.BookingPending, model.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []allocation.ReservationView
	for rows.Next() {
		var v allocation.ReservationView
		if err := rows.Scan(&v.SeatID, &v.FromStopOrder, &v.ToStopOrder, &v.BookingStatus, &v.LockExpiresAt); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// placeholders returns "?, ?, ..." for n bind parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// CreateHold atomically locks the requested seats.  The conflict
// check and the booking/reservation inserts run in one transaction;
// the SELECT ... FOR UPDATE serializes concurrent acquisitions of the
// same seats, so two callers requesting an overlapping segment cannot
// both succeed.
func (r *AllocationStore) CreateHold(ctx context.Context, req allocation.HoldRequest) ([]model.SeatReservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// A seat conflicts when an overlapping reservation belongs to a
	// confirmed booking or to a pending booking whose lock is still
	// live.  Stale pending reservations do not block acquisition.
	query := `SELECT rs.seat_id
	          FROM seat_reservations rs
	          JOIN bookings b ON b.id = rs.booking_id
	          WHERE b.trip_id = ?
	            AND rs.seat_id IN (` + placeholders(len(req.SeatIDs)) + `)
	            AND rs.from_stop_order < ?
	            AND rs.to_stop_order > ?
	            AND (b.status = ? OR (b.status = ? AND rs.lock_expires_at > ?))
	          FOR UPDATE`
	args := make([]interface{}, 0, len(req.SeatIDs)+6)
	args = append(args, req.TripID)
	for _, id := range req.SeatIDs {
		args = append(args, id)
	}
	args = append(args, req.ToStopOrder, req.FromStopOrder,
		model.BookingConfirmed, model.BookingPending, req.Now.UTC())

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	conflict := false
	for rows.Next() {
		var seatID string
		if scanErr := rows.Scan(&seatID); scanErr != nil {
			rows.Close()
			return nil, scanErr
		}
		conflict = true
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}
	if conflict {
		return nil, allocation.ErrSeatConflict
	}

	booking := model.Booking{
		ID:          uuid.NewString(),
		TripID:      req.TripID,
		HolderToken: req.HolderToken,
		Status:      model.BookingPending,
	}
	expires := req.ExpiresAt.UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (id, trip_id, holder_token, status, expires_at) VALUES (?, ?, ?, ?, ?)`,
		booking.ID, booking.TripID, booking.HolderToken, booking.Status, expires,
	); err != nil {
		return nil, err
	}

	reservations := make([]model.SeatReservation, 0, len(req.SeatIDs))
	insert := `INSERT INTO seat_reservations (id, booking_id, seat_id, from_stop_order, to_stop_order, lock_expires_at) VALUES `
	insertArgs := make([]interface{}, 0, len(req.SeatIDs)*6)
	for i, seatID := range req.SeatIDs {
		if i > 0 {
			insert += ","
		}
		insert += "(?, ?, ?, ?, ?, ?)"
		res := model.SeatReservation{
			ID:            uuid.NewString(),
			BookingID:     booking.ID,
			SeatID:        seatID,
			FromStopOrder: req.FromStopOrder,
			ToStopOrder:   req.ToStopOrder,
			LockExpiresAt: expires,
		}
		insertArgs = append(insertArgs, res.ID, res.BookingID, res.SeatID,
			res.FromStopOrder, res.ToStopOrder, res.LockExpiresAt)
		reservations = append(reservations, res)
	}
	if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return reservations, nil
}

// ReleaseHold deletes reservations on PENDING bookings for the given
// trip and seats.  Bookings left with no reservations are marked
// EXPIRED.  Returns the number of reservations removed; zero means
// nothing matched.
func (r *AllocationStore) ReleaseHold(ctx context.Context, tripID string, seatIDs []string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := `SELECT rs.id, rs.booking_id
	          FROM seat_reservations rs
	          JOIN bookings b ON b.id = rs.booking_id
	          WHERE b.trip_id = ? AND b.status = ?
	            AND rs.seat_id IN (` + placeholders(len(seatIDs)) + `)
	          FOR UPDATE`
	args := make([]interface{}, 0, len(seatIDs)+2)
	args = append(args, tripID, model.BookingPending)
	for _, id := range seatIDs {
		args = append(args, id)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	var resIDs []string
	bookingIDs := make(map[string]struct{})
	for rows.Next() {
		var resID, bookingID string
		if scanErr := rows.Scan(&resID, &bookingID); scanErr != nil {
			rows.Close()
			return 0, scanErr
		}
		resIDs = append(resIDs, resID)
		bookingIDs[bookingID] = struct{}{}
	}
	if err = rows.Close(); err != nil {
		return 0, err
	}
	if len(resIDs) == 0 {
		return 0, nil
	}

	delQuery := `DELETE FROM seat_reservations WHERE id IN (` + placeholders(len(resIDs)) + `)`
	delArgs := make([]interface{}, 0, len(resIDs))
	for _, id := range resIDs {
		delArgs = append(delArgs, id)
	}
	if _, err := tx.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return 0, err
	}

	// Flip bookings that lost their last reservation to EXPIRED.
	expQuery := `UPDATE bookings b SET b.status = ?
	             WHERE b.id IN (` + placeholders(len(bookingIDs)) + `) AND b.status = ?
	               AND NOT EXISTS (SELECT 1 FROM seat_reservations rs WHERE rs.booking_id = b.id)`
	expArgs := make([]interface{}, 0, len(bookingIDs)+2)
	expArgs = append(expArgs, model.BookingExpired)
	for id := range bookingIDs {
		expArgs = append(expArgs, id)
	}
	expArgs = append(expArgs, model.BookingPending)
	if _, err := tx.ExecContext(ctx, expQuery, expArgs...); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(resIDs), nil
}

// ReleaseExpired reclaims lapsed PENDING bookings one at a time so a
// failure on an individual booking never aborts the whole sweep.
// Each reclamation re-checks status and expiry under FOR UPDATE, so
// a booking confirmed between the scan and the delete is left alone.
func (r *AllocationStore) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	const q = `SELECT id FROM bookings
	           WHERE status = ? AND expires_at IS NOT NULL AND expires_at < ?`
	rows, err := r.db.QueryContext(ctx, q, model.BookingPending, now.UTC())
	if err != nil {
		return 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			rows.Close()
			return 0, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Close(); err != nil {
		return 0, err
	}

	reclaimed := 0
	for _, id := range ids {
		ok, err := r.reclaimBooking(ctx, id, now)
		if err != nil {
			log.Printf("allocation-store: reclaim booking %s failed: %v", id, err)
			continue
		}
		if ok {
			reclaimed++
		}
	}
	return reclaimed, nil
}

// reclaimBooking expires a single booking inside its own
// transaction.  Returns false without error when the booking was
// concurrently confirmed, cancelled or already reclaimed.
func (r *AllocationStore) reclaimBooking(ctx context.Context, bookingID string, now time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var status string
	var expiresAt sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT status, expires_at FROM bookings WHERE id = ? FOR UPDATE`, bookingID,
	).Scan(&status, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if status != model.BookingPending || !expiresAt.Valid || !expiresAt.Time.Before(now) {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM seat_reservations WHERE booking_id = ?`, bookingID); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, model.BookingExpired, bookingID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}
