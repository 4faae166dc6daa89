// Package server holds the process-wide resources every layer shares.
//
// It owns the lifecycle of:
//   - configuration
//   - logger and the optional New Relic application
//   - database pool
//   - redis client
//   - background job workers (asynq), when e-mail delivery is configured
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/config"
	"github.com/deppfellow/placerate/internal/database"
	"github.com/deppfellow/placerate/internal/lib/email"
	"github.com/deppfellow/placerate/internal/lib/job"
	loggerPkg "github.com/deppfellow/placerate/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client

	// Job is nil when no Resend API key is configured.
	Job *job.JobService

	httpServer *http.Server
}

// New connects the database and redis and starts the job workers.
//
// The database must be reachable. Redis is optional: a failed ping is
// logged and the health check reports it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})
	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
	}

	if cfg.Integration.ResendAPIKey == "" {
		logger.Warn().Msg("integration.resend_api_key not set, welcome emails are disabled")
		return server, nil
	}

	jobService := job.NewJobService(logger, cfg, email.NewClient(cfg, logger))
	if err := jobService.Start(); err != nil {
		_ = server.closeStores()
		return nil, fmt.Errorf("failed to start job server: %w", err)
	}
	server.Job = jobService

	return server, nil
}

// SetupHTTPServer wraps handler in an http.Server using the configured
// timeouts, given in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then releases every resource. It
// keeps going after a failure and returns the errors joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.closeStores(); err != nil {
		errList = append(errList, err)
	}

	if s.LoggerService != nil {
		s.LoggerService.Shutdown()
	}

	return errors.Join(errList...)
}

// closeStores closes the database pool and the redis client. Failures are
// logged and returned joined.
func (s *Server) closeStores() error {
	var errList []error

	if err := s.DB.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close database connection")
		errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close redis client")
		errList = append(errList, fmt.Errorf("failed to close redis client: %w", err))
	}

	return errors.Join(errList...)
}
