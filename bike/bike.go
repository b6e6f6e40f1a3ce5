// Package bike
package bike

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Status int

const (
	Available Status = iota
	Reserved
	InUse
	Maintenance
)

// Bike represents a rentable unit belonging to exactly one station.
// Status is the only field mutated by this service.
type Bike struct {
	ID        uuid.UUID `db:"id"`
	StationID uuid.UUID `db:"station_id"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (s Status) String() string {
	return [...]string{"available", "reserved", "in_use", "maintenance"}[s]
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) Scan(i any) error {
	switch v := i.(type) {
	case string:
		switch v {
		case "available":
			*s = Available
			return nil
		case "reserved":
			*s = Reserved
			return nil
		case "in_use":
			*s = InUse
			return nil
		case "maintenance":
			*s = Maintenance
			return nil
		}
	case []byte:
		return s.Scan(string(v))
	}
	return fmt.Errorf("invalid bike status: %v", i)
}
