package api

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/amsterdambike/rental-backend/internal/middleware"
)

// streamHandler pushes per-station availability over SSE: one snapshot
// on connect, then one per bike change signal. Counts come from the
// aggregate query rather than the in-memory join, so each change costs
// one grouped COUNT instead of a stations×bikes recompute.
func (a *API) streamHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	ch, cancel := a.feed.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	emit := func() bool {
		counts, err := a.br.CountAvailableByStation(c)
		if err != nil {
			logger.ErrorContext(c, "failed to count availability", "error", err)
			return false
		}
		c.SSEvent("availability", counts)
		return true
	}

	first := true
	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			return emit()
		}
		select {
		case <-ch:
			return emit()
		case <-c.Request.Context().Done():
			return false
		}
	})
}
