// Package server wires configuration, storage, and the HTTP API together.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/nimbusdrive/nimbus/backend/internal/api/http"
	"github.com/nimbusdrive/nimbus/backend/internal/api/middleware"
	"github.com/nimbusdrive/nimbus/backend/internal/domain/accounts"
	"github.com/nimbusdrive/nimbus/backend/internal/domain/token"
	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/config"
	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/logging"
	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/monitoring"
	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/tracing"
	"github.com/nimbusdrive/nimbus/backend/internal/vfs"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router    *gin.Engine
	http      *http.Server
	sandboxes *vfs.Manager
	store     *accounts.Store
	tokens    *token.Service
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
	tracer    *tracing.Tracer
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing Nimbus File Service",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_root", cfg.Storage.Root),
	)

	metrics := monitoring.New()
	tracer := tracing.New("fileservice", logger.Logger)

	sandboxes, err := vfs.NewManager(cfg.Storage.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage root: %w", err)
	}

	store, err := accounts.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open account store: %w", err)
	}

	tokens, err := token.New(token.Config{
		Secret: cfg.Auth.Secret,
		TTL:    time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(sandboxes, store, tokens, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/api", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", middleware.Auth(tokens, store), handlers.Me)
	}

	files := router.Group("/api/files")
	files.Use(middleware.Auth(tokens, store))
	{
		files.GET("", handlers.ListFiles)
		files.POST("/upload", handlers.UploadFile)
		files.GET("/download", handlers.DownloadFile)
		files.GET("/preview", handlers.PreviewFile)
		files.POST("/folder", handlers.CreateFolder)
		files.PUT("/rename", handlers.RenameFile)
		files.PUT("/move", handlers.MoveFile)
		files.POST("/copy", handlers.CopyFile)
		files.DELETE("", handlers.DeleteFile)
		files.POST("/search", handlers.SearchFiles)
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:    router,
		sandboxes: sandboxes,
		store:     store,
		tokens:    tokens,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
		tracer:    tracer,
	}, nil
}

// Router exposes the configured gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))

	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
	}

	// Requests are drained by now, so no more spans arrive.
	s.tracer.Close()

	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close account store", zap.Error(err))
		return fmt.Errorf("failed to close account store: %w", err)
	}

	s.logger.Sync()

	return nil
}
