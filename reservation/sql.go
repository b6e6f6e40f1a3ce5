package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNoBikesAvailable = errors.New("no bikes available at station")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Allocate claims exactly one available bike at the station for the
// user: pick a candidate, insert the reservation, flip the bike to
// reserved. All three steps run in one transaction so two concurrent
// attempts can never allocate the same bike, and a failed status
// transition can never leave an orphaned reservation behind.
//
// Candidate order is lowest bike id first. SKIP LOCKED makes a
// concurrent attempt holding the last bike's row lock look like an
// empty station instead of blocking.
func (r *Repository) Allocate(ctx context.Context, stationID uuid.UUID, userID string, now time.Time) (Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Reservation{}, err
	}
	defer tx.Rollback()

	var bikeID uuid.UUID
	err = tx.GetContext(ctx, &bikeID, pickAvailableBike, stationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reservation{}, ErrNoBikesAvailable
		}
		return Reservation{}, err
	}

	var res Reservation
	err = tx.GetContext(ctx, &res, createReservation, uuid.New(), userID, bikeID, now, now.Add(Duration))
	if err != nil {
		return Reservation{}, err
	}

	result, err := tx.ExecContext(ctx, reserveBike, bikeID)
	if err != nil {
		return Reservation{}, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return Reservation{}, err
	}
	if n == 0 {
		// The row lock should make this unreachable, but the transition
		// stays conditional so a surprise still rolls everything back.
		return Reservation{}, ErrNoBikesAvailable
	}

	return res, tx.Commit()
}

const pickAvailableBike = `
SELECT id FROM bikes
WHERE station_id = $1 AND status = 'available'
ORDER BY id
LIMIT 1
FOR UPDATE SKIP LOCKED
`

// Status is left to the column default.
const createReservation = `
INSERT INTO reservations (id, user_id, bike_id, start_time, end_time, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING *
`

const reserveBike = `UPDATE bikes SET status = 'reserved' WHERE id = $1 AND status = 'available'`

// GetByUserID fetches all reservations for a user, newest first.
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, getByUserID, userID)
	return reservations, err
}

const getByUserID = `SELECT * FROM reservations WHERE user_id = $1 ORDER BY start_time DESC`
