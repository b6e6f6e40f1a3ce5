package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amsterdambike/rental-backend/internal/middleware"
	"github.com/amsterdambike/rental-backend/internal/osrm"
)

type routeRequest struct {
	Start osrm.Point `json:"start" binding:"required"`
	End   osrm.Point `json:"end" binding:"required"`
}

// routeHandler is a pass-through to the routing service: it reshapes
// the request into the upstream path and returns the upstream body
// verbatim. Failures surface as a client error with an error field,
// mirroring the proxy contract the map client expects.
func (a *API) routeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := a.routes.Route(c, req.Start, req.End)
	if err != nil {
		logger.ErrorContext(c, "route lookup failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
