package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logging(slog.New(slog.NewJSONHandler(buf, nil))))
	r.GET("/ping", handler)
	return r
}

func TestLogging_TagsAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf, func(c *gin.Context) {
		c.Set(UserIDKey, "rider-1")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), `"user_id":"rider-1"`)
	assert.Contains(t, buf.String(), `"status":204`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
}

func TestLogging_AnonymousRequestCarriesNoUser(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, buf.String(), "user_id")
}

func TestGetLogger_FallsBackToDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, slog.Default(), GetLogger(c))
}
