package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amsterdambike/rental-backend/internal/middleware"
	"github.com/amsterdambike/rental-backend/reservation"
)

type reservationResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    string             `json:"userId"`
	BikeID    uuid.UUID          `json:"bikeId"`
	StartTime time.Time          `json:"startTime"`
	EndTime   time.Time          `json:"endTime"`
	Status    reservation.Status `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

func toReservationResponse(r reservation.Reservation) reservationResponse {
	return reservationResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		BikeID:    r.BikeID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

type createReservationRequest struct {
	StationID string `json:"stationId" binding:"required"`
}

func (a *API) createReservationHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}

	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	stationID, err := uuid.Parse(req.StationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid stationId"})
		return
	}

	res, err := a.rr.Allocate(c, stationID, userID, time.Now())
	if err != nil {
		if errors.Is(err, reservation.ErrNoBikesAvailable) {
			middleware.CountAllocation("no_bikes")
			c.JSON(http.StatusConflict, gin.H{"code": "NO_BIKES_AVAILABLE", "message": "No bikes available at this station"})
			return
		}
		middleware.CountAllocation("error")
		logger.ErrorContext(c, "failed to allocate bike", "stationId", stationID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "RESERVATION_WRITE_FAILED", "message": "failed to create reservation"})
		return
	}

	middleware.CountAllocation("allocated")
	c.JSON(http.StatusCreated, toReservationResponse(res))
}

func (a *API) getReservationsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}

	reservations, err := a.rr.GetByUserID(c, userID)
	if err != nil {
		logger.ErrorContext(c, "failed to get reservations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "FETCH_FAILED", "message": "failed to fetch reservations"})
		return
	}

	responses := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		responses = append(responses, toReservationResponse(r))
	}

	c.JSON(http.StatusOK, responses)
}
