// Package server exposes the aggregate search over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amishk599/jobagg/internal/aggregator"
	"github.com/amishk599/jobagg/internal/model"
)

// Searcher runs one aggregate search. Implemented by *aggregator.Aggregator.
type Searcher interface {
	Search(ctx context.Context, q model.Query) aggregator.Result
}

// Server wraps the gin router and the underlying http.Server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	searcher   Searcher
	logger     *slog.Logger
}

// New builds a server with all routes and middleware registered.
func New(addr string, searcher Searcher, logger *slog.Logger) *Server {
	router := gin.New()
	_ = router.SetTrustedProxies(nil)

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		noCache(),
		anyOrigin(),
		cors.New(corsCfg),
	)

	s := &Server{
		router:   router,
		searcher: searcher,
		logger:   logger,
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/job-search", s.handleJobSearch)
	// Preflights carrying an Origin are answered by the cors middleware.
	s.router.OPTIONS("/job-search", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// searchResponse is the body of /job-search. Results is never null.
type searchResponse struct {
	Results []model.MergedJob `json:"results"`
}

func (s *Server) handleJobSearch(c *gin.Context) {
	q := model.Query{
		Text:    c.Query("q"),
		Company: c.Query("company"),
		Region:  c.Query("region"),
	}

	res := s.searcher.Search(c.Request.Context(), q)

	results := res.Jobs
	if results == nil {
		results = []model.MergedJob{}
	}
	c.JSON(http.StatusOK, searchResponse{Results: results})
}

// Handler returns the router for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until Shutdown is called. It returns nil on graceful close.
func (s *Server) Run() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.logger.Info("http server shutdown completed")
	return nil
}
