package repository // repository defines data access for trains and their seat inventory

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"fmt"          // fmt builds seat labels

	"github.com/google/uuid" // uuid generates primary keys

	"github.com/iliyamo/railway-seat-reservation/internal/model"
)

// Seat letters used when generating inventory.  Four letters per row
// matches the physical 2+2 layout of the carriages.
var seatLetters = []string{"A", "B", "C", "D"}

// TrainRepo provides methods to work with trains, carriages and
// seats in the database.  Provisioning is idempotent: once any
// carriage or seat exists for a train, the corresponding generate
// call is a no-op so layouts are never silently regenerated.
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo constructs a TrainRepo with the given DB handle.
func NewTrainRepo(db *sql.DB) *TrainRepo {
	return &TrainRepo{db: db}
}

// GetByID retrieves a train by its id.
func (r *TrainRepo) GetByID(ctx context.Context, id string) (*model.Train, error) {
	const q = `SELECT id, name, carriage_count, is_active, created_at, updated_at
	           FROM trains WHERE id = ?`
	var t model.Train
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.Name, &t.CarriageCount, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GenerateCarriages creates carriageCount carriages with 1-based
// indexes for the train.  If the train already has any carriages the
// call does nothing and reports zero created.  The existence check
// and the inserts run in one transaction.
func (r *TrainRepo) GenerateCarriages(ctx context.Context, trainID string, carriageCount int) (int, error) {
	if carriageCount < 1 {
		return 0, nil
	}
	if _, err := r.GetByID(ctx, trainID); err != nil {
		return 0, err
	}

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

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM carriages WHERE train_id = ? FOR UPDATE`, trainID,
	).Scan(&existing); err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	query := `INSERT INTO carriages (id, train_id, idx) VALUES `
	args := make([]interface{}, 0, carriageCount*3)
	for i := 1; i <= carriageCount; i++ {
		if i > 1 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, uuid.NewString(), trainID, i)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return carriageCount, nil
}

// GenerateSeats creates seatsPerCarriage seats in every carriage of
// the train, labeled letter-major within each row ("A01", "B01", ...,
// "D01", "A02", ...).  If any seat already exists for the train the
// call does nothing and reports zero created.  Rows are derived from
// the seat count divided by the number of letters.
func (r *TrainRepo) GenerateSeats(ctx context.Context, trainID string, seatsPerCarriage int) (int, error) {
	if seatsPerCarriage < len(seatLetters) {
		return 0, nil
	}
	if _, err := r.GetByID(ctx, trainID); err != nil {
		return 0, err
	}

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

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seats s JOIN carriages c ON c.id = s.carriage_id WHERE c.train_id = ? FOR UPDATE`,
		trainID,
	).Scan(&existing); err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM carriages WHERE train_id = ? ORDER BY idx`, trainID)
	if err != nil {
		return 0, err
	}
	var carriageIDs []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			rows.Close()
			return 0, scanErr
		}
		carriageIDs = append(carriageIDs, id)
	}
	if err = rows.Close(); err != nil {
		return 0, err
	}
	if len(carriageIDs) == 0 {
		return 0, nil
	}

	rowCount := seatsPerCarriage / len(seatLetters)
	query := `INSERT INTO seats (id, carriage_id, seat_number) VALUES `
	args := make([]interface{}, 0, len(carriageIDs)*rowCount*len(seatLetters)*3)
	first := true
	for _, cid := range carriageIDs {
		for row := 1; row <= rowCount; row++ {
			for _, letter := range seatLetters {
				if !first {
					query += ","
				}
				first = false
				query += "(?, ?, ?)"
				args = append(args, uuid.NewString(), cid, fmt.Sprintf("%s%02d", letter, row))
			}
		}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(carriageIDs) * rowCount * len(seatLetters), nil
}
