package station

import (
	"time"

	"github.com/google/uuid"
)

// Station is a physical pickup/drop-off location with a fixed
// coordinate. Rows are provisioned out-of-band and are read-only here.
type Station struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Phone     string    `db:"phone"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	CreatedAt time.Time `db:"created_at"`
}
