// Package web serves the browser dashboard: htmx fragments rendered from
// embedded templates and a websocket relay of live container logs.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/types"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// API is everything the browser dashboard asks of the sync backend
type API interface {
	dashboard.Backend
	dashboard.SnapshotSource
	dashboard.LogSource

	Logs(ctx context.Context, containerID string) (string, error)
	GetConfig(ctx context.Context, name string) (*types.Configuration, error)
	BrowseDirectories(ctx context.Context, path string) (*types.BrowseResult, error)
}

// Config holds the server configuration
type Config struct {
	Listen          string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowOrigins    []string

	RefreshInterval time.Duration
	Delays          dashboard.Delays
	AutoScroll      bool
	VNCURL          string
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Listen:          constants.DefaultWebListen,
		ReadTimeout:     constants.DefaultServerReadTimeout,
		ShutdownTimeout: constants.DefaultServerShutdownTimeout,
		AllowOrigins:    []string{"http://localhost", "http://127.0.0.1"},
		RefreshInterval: constants.DefaultRefreshInterval,
		Delays:          dashboard.DefaultDelays(),
		AutoScroll:      true,
		VNCURL:          constants.DefaultVNCURL,
	}
}

// Server represents the dashboard HTTP server
type Server struct {
	config *Config
	echo   *echo.Echo
	api    API
	exec   *dashboard.Executor
	now    func() time.Time
	routed bool
}

// New creates a new server for the given backend
func New(cfg *Config, api API) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = ErrorHandler

	return &Server{
		config: cfg,
		echo:   e,
		api:    api,
		exec:   dashboard.NewExecutor(api, cfg.Delays),
		now:    time.Now,
	}, nil
}

// Echo returns the Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	s.setup()
	return s.echo
}

func (s *Server) setup() {
	if s.routed {
		return
	}
	s.routed = true
	s.setupMiddleware()
	s.setupRoutes()
}

// Start listens on the configured address and blocks until ctx is cancelled
// or the process is interrupted. ready, when set, receives the bound address.
func (s *Server) Start(ctx context.Context, ready func(addr string)) error {
	s.setup()

	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}

	// no write timeout: log websockets stay open
	srv := &http.Server{
		Handler:     s.echo,
		ReadTimeout: s.config.ReadTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	addr := ln.Addr().String()
	logger.WithField("addr", addr).Info("Dashboard listening")
	if ready != nil {
		ready(addr)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		logger.Info("Shutting down dashboard...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down dashboard...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Dashboard stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(logger.RequestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			"HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.echo.GET("/", s.handleIndex)

	ui := s.echo.Group("/ui")
	ui.GET("/stats", s.handleStats)
	ui.GET("/containers", s.handleContainers)
	ui.GET("/profiles", s.handleProfiles)
	ui.GET("/refresh", s.handleRefresh)

	ui.POST("/containers/:id/:action", s.handleContainerAction)
	ui.GET("/containers/:id/logs/ws", s.handleLogsWebSocket)
	ui.GET("/containers/:id/logs/download", s.handleLogsDownload)

	ui.POST("/profiles", s.handleCreateProfile)
	ui.DELETE("/profiles/:name", s.handleDeleteProfile)
	ui.DELETE("/profiles/:name/files", s.handleDeleteProfileFiles)
	ui.POST("/profiles/:name/start", s.handleStartProfile)
	ui.POST("/profiles/:name/config", s.handleSaveConfig)
	ui.POST("/profiles/:name/auth", s.handleStartAuth)
	ui.POST("/profiles/:name/auth/stop", s.handleStopAuth)

	ui.GET("/modals/logs/:id", s.handleLogsModal)
	ui.GET("/modals/create", s.handleCreateModal)
	ui.GET("/modals/config/:name", s.handleConfigModal)
	ui.GET("/modals/auth/:name", s.handleAuthModal)
	ui.GET("/modals/folders", s.handleFoldersModal)
	ui.GET("/modals/close", s.handleCloseModal)
	ui.GET("/folders/select", s.handleSelectFolder)
}
