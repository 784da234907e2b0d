// Package server serves the seeded dashboard datasets and the live feed over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nshruti113/attack-map-dashboard/internal/config"
	"github.com/nshruti113/attack-map-dashboard/internal/feed"
	"github.com/nshruti113/attack-map-dashboard/internal/metrics"
	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

const (
	mirrorTimeout   = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

// FeedMirror receives every live attack. storage.RedisClient implements it.
type FeedMirror interface {
	StoreAttack(ctx context.Context, attack models.Attack) error
}

type Server struct {
	cfg     *config.Config
	feed    *feed.Feed
	mirror  FeedMirror
	metrics *metrics.Metrics
	hub     *Hub
	router  *gin.Engine
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Server)

func WithMirror(m FeedMirror) Option {
	return func(s *Server) { s.mirror = m }
}

// WithClock fixes the clock used to stamp seeded attack batches.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(cfg *config.Config, f *feed.Feed, m *metrics.Metrics, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	s := &Server{
		cfg:     cfg,
		feed:    f,
		metrics: m,
		hub:     NewHub(m, logger),
		router:  router,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	f.Subscribe(s.onLiveAttack)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(s.logger))
	s.router.Use(corsMiddleware())

	api := s.router.Group("/api")
	{
		// Seeded datasets
		api.GET("/attacks", s.getAttacks)
		api.GET("/threat-status", s.getThreatStatus)
		api.GET("/countries/top", s.getTopCountries)
		api.GET("/attack-types/breakdown", s.getAttackTypeBreakdown)
		api.GET("/timeline", s.getTimeline)
		api.GET("/stats/summary", s.getSummary)
		api.GET("/dashboard", s.getDashboard)

		// Live feed
		api.GET("/feed", s.getFeed)
	}

	s.router.GET("/ws", s.handleWebSocket)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// onLiveAttack fans a new live attack out to metrics, websocket clients and
// the mirror. Mirror failures are logged and never stop the feed.
func (s *Server) onLiveAttack(attack models.Attack) {
	s.metrics.ObserveLiveAttack(attack)
	s.hub.Broadcast(Message{Type: MessageAttack, Payload: attack})

	if s.mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	if err := s.mirror.StoreAttack(ctx, attack); err != nil {
		s.metrics.MirrorError()
		s.logger.Warn("failed to mirror live attack", zap.String("attack_id", attack.ID), zap.Error(err))
	}
}

// Run serves HTTP and drives the live feed until ctx is cancelled, then
// shuts both down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	feedCtx, stopFeed := context.WithCancel(ctx)
	defer stopFeed()
	go s.feed.Run(feedCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	stopFeed()
	s.hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// requestLogger logs one line per request
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
