package server

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"account-item-service/cmd/api/di"
	ginrouter "account-item-service/internal/adapter/gin/router"
	"account-item-service/internal/config"
)

// Server struct holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router wired from the container
func New(cfg *config.Config, l *zap.Logger, container *di.Container) *Server {
	router := ginrouter.SetupRouter(
		container.AccountHandler,
		container.ItemHandler,
		container.RateLimitCfg,
		container.RedisClient.Client,
		l,
	)

	addr := ":" + cfg.App.HTTPPort
	l.Info("REST API configured", zap.String("address", addr))

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
