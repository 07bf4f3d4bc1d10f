// Package server wires the backend: database, sessions, media storage,
// event producer, handlers and the HTTP server itself.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/auth"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/config"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/database"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/events"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/feed"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/media"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/session"
	"github.com/Mashiku-tect/Designer-Lock-App-sub000/internal/uploads"
)

// Config holds HTTP server configuration.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables.
func LoadConfigFromEnv() *Config {
	return &Config{
		Port:         config.GetEnvInt("PORT", 8080),
		ReadTimeout:  config.GetEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: config.GetEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  config.GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	cfg    *Config
	logger *slog.Logger

	db       database.Service
	media    media.Service
	producer *events.Producer
	sessions session.Manager

	authHandler    *auth.Handler
	feedHandler    *feed.Handler
	uploadsHandler *uploads.Handler
}

// New constructs the backend. Media storage and the event producer are
// optional; the server degrades to raw media keys and no notifications
// when they are unconfigured.
func New(logger *slog.Logger) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := database.New()
	logger.Info("database connected")

	mediaSvc, err := media.New(ctx, logger)
	if err != nil {
		logger.Warn("media storage disabled", "err", err)
		mediaSvc = nil
	}

	producer, err := events.NewProducer(logger)
	if err != nil {
		logger.Warn("event producer disabled", "err", err)
		producer = nil
	}

	sessions := session.NewManager(newSessionStore(logger))

	authSvc := auth.NewService(db, sessions)
	feedSvc := feed.NewService(feed.NewRepository(db), mediaSvc, producer, logger)

	srv := &Server{
		cfg:         LoadConfigFromEnv(),
		logger:      logger,
		db:          db,
		media:       mediaSvc,
		producer:    producer,
		sessions:    sessions,
		authHandler: auth.NewHandler(authSvc),
		feedHandler: feed.NewHandler(feedSvc),
	}
	if mediaSvc != nil {
		srv.uploadsHandler = uploads.NewHandler(uploads.NewService(mediaSvc), logger)
	}
	return srv
}

// newSessionStore picks Redis when REDIS_ADDR is set, otherwise an in-memory
// store good enough for a single node.
func newSessionStore(logger *slog.Logger) session.Store {
	addr := config.GetEnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		logger.Warn("REDIS_ADDR not set, using in-memory session store")
		return session.NewMemStore()
	}
	return session.NewRedisStore(
		addr,
		config.GetEnvOrDefault("REDIS_PASSWORD", ""),
		config.GetEnvInt("REDIS_DB", 0),
	)
}

// HTTPServer returns the configured *http.Server, ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// Close releases backend resources.
func (s *Server) Close() {
	s.producer.Close()
	if err := s.db.Close(); err != nil {
		s.logger.Error("db close error", "err", err)
	}
}
