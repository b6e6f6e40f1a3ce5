package bike

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotAvailable = errors.New("bike not available")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetBikes(ctx context.Context) ([]Bike, error) {
	var bikes []Bike
	err := r.db.SelectContext(ctx, &bikes, getBikes)
	return bikes, err
}

const getBikes = `SELECT * FROM bikes`

func (r *Repository) GetBikesByStation(ctx context.Context, stationID uuid.UUID) ([]Bike, error) {
	var bikes []Bike
	err := r.db.SelectContext(ctx, &bikes, getBikesByStation, stationID)
	return bikes, err
}

const getBikesByStation = `SELECT * FROM bikes WHERE station_id = $1 ORDER BY id`

// StationCount is one row of the per-station availability aggregate.
type StationCount struct {
	StationID uuid.UUID `db:"station_id" json:"stationId"`
	Available int       `db:"available" json:"availableBikes"`
}

// CountAvailableByStation computes availability in the database rather
// than joining the two tables in memory. Stations with no available
// bikes still get a row.
func (r *Repository) CountAvailableByStation(ctx context.Context) ([]StationCount, error) {
	var counts []StationCount
	err := r.db.SelectContext(ctx, &counts, countAvailableByStation)
	return counts, err
}

const countAvailableByStation = `
SELECT s.id AS station_id, count(b.id) FILTER (WHERE b.status = 'available') AS available
FROM stations s
LEFT JOIN bikes b ON b.station_id = s.id
GROUP BY s.id
`

// SetStatus transitions a bike from one status to another. The update
// is conditional on the current status, so a lost race surfaces as
// ErrNotAvailable instead of clobbering another writer's transition.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, setStatus, to.String(), id, from.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotAvailable
	}
	return nil
}

const setStatus = `UPDATE bikes SET status = $1 WHERE id = $2 AND status = $3`
