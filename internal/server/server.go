package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/streamvault-media/streamvault/internal/logger"
	streamvault "github.com/streamvault-media/streamvault/internal/server/config"
	"github.com/streamvault-media/streamvault/internal/server/handlers"
)

type Server struct {
	router       *chi.Mux
	serverConfig *streamvault.ServerEnvironment
	corsConfigs  *streamvault.CORSConfigs
	serverLogger *slog.Logger
	assets       fs.FS
}

// NewServer wires the middleware stack and routes onto the supplied router.
// assets is the prebuilt SPA bundle (os.DirFS over STATIC_DIR in production,
// an in-memory fs in tests).
func NewServer(serverConfig *streamvault.ServerEnvironment, corsConfigs *streamvault.CORSConfigs, serverLogger *slog.Logger, assets fs.FS, router *chi.Mux) *Server {
	s := &Server{
		router:       router,
		serverConfig: serverConfig,
		corsConfigs:  corsConfigs,
		serverLogger: serverLogger,
		assets:       assets,
	}

	s.setupMiddleware()
	s.registerOpsRoutes()
	s.registerStaticAssetRoutes()

	return s
}

// setupMiddleware sets up the middleware that applies to all server requests
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.serverLogger))
	s.router.Use(Recovery)
	s.router.Use(SecurityHeaders(s.serverConfig.Environment, s.serverConfig.CatalogOrigin))
	s.router.Use(chimiddleware.Compress(5))
	s.router.Use(RateLimit(s.serverConfig.RateLimitRPS, s.serverConfig.RateLimitBurst))
}

// registerOpsRoutes registers the operational endpoints (always available)
func (s *Server) registerOpsRoutes() {
	ops := handlers.NewOpsHandler(s.serverConfig)

	s.router.Group(func(r chi.Router) {
		r.Use(s.corsConfigs.Public.Wrap)

		// liveness only - no downstream dependency checks
		r.Get("/health", ops.HealthHandler)

		r.Get("/metrics", ops.MetricsHandler)
		r.Get("/version", ops.VersionHandler)
	})
}

// registerStaticAssetRoutes serves the SPA bundle; the handler owns the
// catch-all fallback to the entry document.
func (s *Server) registerStaticAssetRoutes() {
	spa := NewSPAHandler(s.assets)
	s.router.Handle("/*", spa)
}

// Start runs the server until ctx is cancelled, then shuts down with a
// bounded timeout so a hung connection cannot block exit.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.serverConfig.Host, s.serverConfig.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.serverConfig.ReadTimeout,
		WriteTimeout: s.serverConfig.WriteTimeout,
		IdleTimeout:  s.serverConfig.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.serverLogger.Info("server listening",
			slog.String("address", addr),
			slog.String("environment", s.serverConfig.Environment),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.serverLogger.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), streamvault.ServerShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.serverLogger.Warn("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
