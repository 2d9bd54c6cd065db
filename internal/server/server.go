// Package server exposes the algorithm catalog over HTTP and plays
// algorithms to websocket clients, one playback controller per connection.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	reg          *catalog.Registry
	metrics      *telemetry.Metrics
	gatherer     prometheus.Gatherer
	logger       *slog.Logger
	speed        time.Duration
	historyLimit int
	router       *gin.Engine
}

type Option func(*Server)

// WithMetrics records into m and serves g on /metrics.
func WithMetrics(m *telemetry.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlayback sets the pacing and history limit of websocket sessions.
func WithPlayback(speed time.Duration, historyLimit int) Option {
	return func(s *Server) {
		s.speed = speed
		s.historyLimit = historyLimit
	}
}

func New(reg *catalog.Registry, opts ...Option) *Server {
	s := &Server{
		reg:      reg,
		logger:   slog.Default().With("component", "server"),
		speed:    config.DefaultSpeed,
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = telemetry.Default()
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.health)
	api := router.Group("/api")
	{
		api.GET("/algorithms", s.listAlgorithms)
		api.GET("/algorithms/:family", s.listFamily)
		api.GET("/algorithms/:family/:name", s.getAlgorithm)
		api.GET("/presets/:family", s.listPresets)
		api.POST("/trace", s.trace)
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	router.GET("/ws", s.handleWebSocket)
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// ListenAndServe serves until ctx ends, then shuts down gracefully. Open
// websocket sessions are closed through their request contexts.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// prepared is a resolved run: the catalog entry, the input it was built
// from and a producer ready to hand to a controller.
type prepared struct {
	family   catalog.Family
	entry    catalog.Entry
	input    catalog.Input
	producer *step.Producer
}

func (s *Server) prepare(cfg *config.Config) (prepared, error) {
	family, err := catalog.ParseFamily(cfg.Family)
	if err != nil {
		return prepared{}, err
	}
	in, err := cfg.Input()
	if err != nil {
		return prepared{}, err
	}
	seq, entry, err := s.reg.New(family, catalog.Name(cfg.Algorithm), in)
	if err != nil {
		return prepared{}, err
	}
	return prepared{family: family, entry: entry, input: in, producer: step.Pull(seq)}, nil
}
