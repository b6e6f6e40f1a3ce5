package api

import (
	"net/http"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	adapter "github.com/gwatts/gin-adapter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amsterdambike/rental-backend/bike"
	"github.com/amsterdambike/rental-backend/internal/cache"
	"github.com/amsterdambike/rental-backend/internal/middleware"
	"github.com/amsterdambike/rental-backend/internal/o11y"
	"github.com/amsterdambike/rental-backend/internal/osrm"
	"github.com/amsterdambike/rental-backend/reservation"
	"github.com/amsterdambike/rental-backend/station"
)

// Feed is the change subscription the availability stream consumes.
type Feed interface {
	Subscribe() (<-chan struct{}, func())
}

type Config struct {
	Auth0Domain string
	Audience    string

	MetricsUsername string
	MetricsPassword string

	// Auth overrides the JWT middleware; used by tests.
	Auth gin.HandlerFunc
}

type API struct {
	r         *gin.Engine
	sr        *station.Repository
	br        *bike.Repository
	rr        *reservation.Repository
	feed      Feed
	snapshots *cache.Snapshot
	routes    osrm.Client
}

func New(sr *station.Repository, br *bike.Repository, rr *reservation.Repository,
	feed Feed, snapshots *cache.Snapshot, routes osrm.Client,
	obs *o11y.Observability, cfg Config) (*API, error) {

	a := &API{
		r:         gin.New(),
		sr:        sr,
		br:        br,
		rr:        rr,
		feed:      feed,
		snapshots: snapshots,
		routes:    routes,
	}

	a.r.Use(
		gin.Recovery(),
		middleware.CORS(),
		middleware.Tracing(),
		middleware.Logging(obs.Logger),
		middleware.Metrics(obs.Registry),
	)

	auth := cfg.Auth
	if auth == nil {
		var err error
		auth, err = jwtAuth(cfg.Auth0Domain, cfg.Audience)
		if err != nil {
			return nil, err
		}
	}

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	a.r.GET("/stations", a.stationsHandler)
	a.r.GET("/stations/stream", a.streamHandler)
	a.r.GET("/stations/:id", a.stationHandler)
	a.r.POST("/route", a.routeHandler)

	protected := a.r.Group("/", auth)
	protected.POST("/reservations", a.createReservationHandler)
	protected.GET("/reservations", a.getReservationsHandler)

	if cfg.MetricsUsername != "" {
		a.r.GET("/metrics",
			gin.BasicAuth(gin.Accounts{cfg.MetricsUsername: cfg.MetricsPassword}),
			gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})),
		)
	}

	return a, nil
}

func (a *API) Router() *gin.Engine {
	return a.r
}

// jwtAuth validates bearer tokens against the identity provider. An
// empty domain yields a middleware that rejects everything, so a
// misconfigured server fails closed.
func jwtAuth(domain, audience string) (gin.HandlerFunc, error) {
	if domain == "" {
		return func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
			c.Abort()
		}, nil
	}

	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
	)
	if err != nil {
		return nil, err
	}

	mw := jwtmiddleware.New(jwtValidator.ValidateToken)
	return adapter.Wrap(mw.CheckJWT), nil
}
