// Package server exposes the analytics pipeline over HTTP. The API is a
// thin presentation layer: every request materializes its own rate series
// and runs the stateless pipeline, so concurrent requests share nothing.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/forward"
	"github.com/rustyeddy/fxrisk/rates"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wires the HTTP routes to a rate provider and default pipeline
// parameters.
type Server struct {
	provider rates.Provider
	params   analysis.Params
	router   *gin.Engine
	log      *logrus.Entry
}

// New builds a Server. rates configures the interest-rate legs used for
// every request; per-request overrides are accepted in the payload.
func New(provider rates.Provider, ir forward.InterestRates, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		provider: provider,
		params:   analysis.Params{Rates: ir},
		router:   router,
		log:      log.WithField("component", "server"),
	}

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/scenarios", s.handleScenarios)

	return s
}

// Handler returns the http.Handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("serving analytics API")
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
		"formula": "forward = spot * exp((r_quote - r_base) * days/365)",
	})
}
