package reservation

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Duration is the fixed rental window. End time is always start time
// plus this at creation; extension and renewal are not modeled.
const Duration = 24 * time.Hour

type Status int

const (
	StatusPending Status = iota
	StatusActive
	StatusCompleted
	StatusCancelled
)

// Reservation is a time-boxed claim by a user on one bike.
type Reservation struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	BikeID    uuid.UUID `db:"bike_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (s Status) String() string {
	return [...]string{"pending", "active", "completed", "cancelled"}[s]
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) Scan(i any) error {
	switch v := i.(type) {
	case string:
		switch v {
		case "pending":
			*s = StatusPending
			return nil
		case "active":
			*s = StatusActive
			return nil
		case "completed":
			*s = StatusCompleted
			return nil
		case "cancelled":
			*s = StatusCancelled
			return nil
		}
	case []byte:
		return s.Scan(string(v))
	}
	return fmt.Errorf("invalid reservation status: %v", i)
}
