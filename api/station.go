package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/amsterdambike/rental-backend/availability"
	"github.com/amsterdambike/rental-backend/internal/middleware"
	"github.com/amsterdambike/rental-backend/station"
)

type stationResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Lat            float64   `json:"latitude"`
	Lng            float64   `json:"longitude"`
	AvailableBikes int       `json:"availableBikes"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toStationResponse(sa availability.StationAvailability) stationResponse {
	return stationResponse{
		ID:             sa.ID,
		Name:           sa.Name,
		Address:        sa.Address,
		Phone:          sa.Phone,
		Lat:            sa.Latitude,
		Lng:            sa.Longitude,
		AvailableBikes: sa.AvailableBikes,
		CreatedAt:      sa.CreatedAt,
	}
}

// stationsHandler lists every station with its available-bike count:
// two table reads joined by the projector, fronted by the snapshot
// cache when one is configured.
func (a *API) stationsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	if a.snapshots != nil {
		if b, err := a.snapshots.Get(c); err == nil && b != nil {
			c.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	stations, err := a.sr.GetStations(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get stations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FETCH_FAILED", "message": "failed to fetch stations"})
		return
	}

	bikes, err := a.br.GetBikes(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get bikes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FETCH_FAILED", "message": "failed to fetch bikes"})
		return
	}

	projected := availability.Project(stations, bikes)
	responses := make([]stationResponse, 0, len(projected))
	for _, sa := range projected {
		responses = append(responses, toStationResponse(sa))
	}

	body, err := json.Marshal(responses)
	if err != nil {
		logger.ErrorContext(c, "failed to marshal stations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if a.snapshots != nil {
		if err := a.snapshots.Set(c, body); err != nil {
			logger.ErrorContext(c, "failed to cache stations snapshot", "error", err)
		}
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (a *API) stationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed id cannot name any station.
		c.JSON(http.StatusNotFound, gin.H{"code": "STATION_NOT_FOUND", "message": "Station not found"})
		return
	}

	s, err := a.sr.GetStation(c, id)
	if err != nil {
		if errors.Is(err, station.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "STATION_NOT_FOUND", "message": "Station not found"})
			return
		}
		logger.ErrorContext(c, "failed to get station", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FETCH_FAILED", "message": "failed to fetch station"})
		return
	}

	bikes, err := a.br.GetBikesByStation(c, s.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get bikes for station", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FETCH_FAILED", "message": "failed to fetch bikes"})
		return
	}

	projected := availability.Project([]station.Station{s}, bikes)
	c.JSON(http.StatusOK, toStationResponse(projected[0]))
}
