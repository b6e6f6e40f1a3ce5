// Package availability derives per-station available-bike counts.
package availability

import (
	"github.com/google/uuid"

	"github.com/amsterdambike/rental-backend/bike"
	"github.com/amsterdambike/rental-backend/station"
)

// StationAvailability is a station augmented with its count of
// available bikes.
type StationAvailability struct {
	station.Station
	AvailableBikes int
}

// Project joins the full station set with the full bike set: for each
// station, the count of bikes referencing it with status available.
// Pure function of its inputs. Bikes referencing a station that is not
// in the set contribute to no count. Output order follows the input
// station order.
func Project(stations []station.Station, bikes []bike.Bike) []StationAvailability {
	counts := make(map[uuid.UUID]int, len(stations))
	for _, s := range stations {
		counts[s.ID] = 0
	}
	for _, b := range bikes {
		if b.Status != bike.Available {
			continue
		}
		if _, ok := counts[b.StationID]; !ok {
			continue
		}
		counts[b.StationID]++
	}

	out := make([]StationAvailability, 0, len(stations))
	for _, s := range stations {
		out = append(out, StationAvailability{
			Station:        s,
			AvailableBikes: counts[s.ID],
		})
	}
	return out
}
