// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     server
// Description: Script server: gRPC blaze.Script plus HTTP (/ws, /health)
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/VDFOREVER/blaze/foundation/scripting"
	"github.com/VDFOREVER/blaze/internal/store"
	"github.com/VDFOREVER/blaze/pkg/core/cache"
	"github.com/VDFOREVER/blaze/pkg/core/config"
	bzgrpc "github.com/VDFOREVER/blaze/pkg/core/grpc"
	"github.com/VDFOREVER/blaze/pkg/core/health"
	"github.com/VDFOREVER/blaze/pkg/core/logging"
	"github.com/VDFOREVER/blaze/pkg/core/version"
)

// canary is parsed by the script health check
const canary = "mut ready = check(true, timeout=1);"

// Options configures the script server
type Options struct {
	Config    *config.Config
	Engine    *scripting.Engine
	Datablaze *store.Datablaze
	Logger    *logging.Logger
}

// Server runs the script service on gRPC and HTTP
type Server struct {
	grpc    *bzgrpc.Server
	http    *http.Server
	service *ScriptService
	cache   *cache.Cache[*Response]
	health  *health.Registry
	logger  *logging.Logger
	config  *config.Config
}

// New creates the server. Parses are recorded when a datablaze is attached.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewFromConfig("script-server", cfg)
	}

	engine := opts.Engine
	if engine == nil {
		engine = scripting.New(scripting.Options{
			Logger:          logger.Foundation(),
			SourceLabel:     cfg.Script.SourceLabel,
			MaxSourceLength: cfg.Script.MaxSourceLength,
		})
	}

	var recorder Recorder
	if opts.Datablaze != nil {
		recorder = opts.Datablaze
	}
	service := NewScriptService(engine, recorder, logger)

	var results *cache.Cache[*Response]
	if cfg.Script.CacheSize > 0 {
		results = cache.New[*Response](cache.Config{
			MaxItems: cfg.Script.CacheSize,
			TTL:      cfg.Script.CacheTTL.Duration,
		})
		service.UseCache(results)
	}

	registry := health.NewRegistry("blaze", version.Server)
	registry.Register(health.ErrorCheck("script", time.Second, func(ctx context.Context) error {
		_, err := engine.WithSourceLabel("health").Analyze(canary)
		return err
	}))
	if opts.Datablaze != nil {
		registry.Register(health.PingCheck("datablaze", opts.Datablaze, time.Second))
	}

	grpcServer := bzgrpc.NewServer(bzgrpc.ServerConfigFrom(cfg), logger)
	RegisterScriptServer(grpcServer.GRPCServer(), service)
	grpcServer.SetServingStatus(ScriptServiceName, true)

	ws := NewWebSocketHandler(service, cfg.Server.AllowedOrigins, logger)

	httpServer := &http.Server{
		Addr:        cfg.HTTPAddress(),
		Handler:     NewHTTPHandler(ws, registry, logger),
		ReadTimeout: cfg.Server.ReadTimeout.Duration,
		// WriteTimeout is not set: it would cut long-lived WebSocket connections
		IdleTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &Server{
		grpc:    grpcServer,
		http:    httpServer,
		service: service,
		cache:   results,
		health:  registry,
		logger:  logger,
		config:  cfg,
	}
}

// Service returns the transport independent script service
func (s *Server) Service() *ScriptService {
	return s.service
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run listens on the configured addresses and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	grpcLis, err := net.Listen("tcp", s.config.GRPCAddress())
	if err != nil {
		return err
	}

	httpLis, err := net.Listen("tcp", s.config.HTTPAddress())
	if err != nil {
		grpcLis.Close()
		return err
	}

	return s.Serve(ctx, grpcLis, httpLis)
}

// Serve serves on the given listeners until ctx is done or a server fails,
// then shuts both servers down within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	s.logger.Info("Starting Blaze script server",
		"grpc", grpcLis.Addr().String(),
		"http", httpLis.Addr().String(),
		"version", version.Server,
	)

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.grpc.Serve(grpcLis)
	}()
	go func() {
		if err := s.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	s.logger.Info("Stopping Blaze script server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout.Duration)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP shutdown error", "error", err)
	}
	s.grpc.StopWithTimeout(shutdownCtx)
	if s.cache != nil {
		s.cache.Close()
	}

	return serveErr
}
