package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ArowuTest/mystery-message-backend/api/routes"
	"github.com/ArowuTest/mystery-message-backend/internal/config"
	"github.com/ArowuTest/mystery-message-backend/internal/handlers"
	"github.com/ArowuTest/mystery-message-backend/internal/logging"
	"github.com/ArowuTest/mystery-message-backend/internal/repositories"
	memoryrepo "github.com/ArowuTest/mystery-message-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/mystery-message-backend/internal/repositories/mongodb"
	redisrepo "github.com/ArowuTest/mystery-message-backend/internal/repositories/redis"
	"github.com/ArowuTest/mystery-message-backend/pkg/mailer"
	"github.com/ArowuTest/mystery-message-backend/pkg/mongodb"
	redisclient "github.com/ArowuTest/mystery-message-backend/pkg/redis"
	"github.com/ArowuTest/mystery-message-backend/pkg/textgen"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logrus.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

// run owns every resource it opens, so each failure path unwinds through the defers
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.JWT.Secret == "" {
		return errors.New("JWT secret is not configured (set JWT_SECRET)")
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backends := routes.Backends{
		Mailer:       mailer.New(cfg.Mail, logger),
		TextGen:      textgen.NewClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, cfg.TextGen.Model, cfg.TextGen.MockTextGen),
		HealthChecks: map[string]handlers.HealthCheck{},
	}

	// User record store
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory user store; data is lost on restart")
		backends.Users = memoryrepo.NewUserRepository()
	default:
		mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(disconnectCtx); err != nil {
				logger.WithError(err).Error("error disconnecting from MongoDB")
			}
		}()

		userRepo := mongorepo.NewUserRepository(mongoClient.Database(cfg.MongoDB.Database)).
			WithOpTimeout(cfg.MongoDB.OpTimeout)
		indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoDB.ConnectTimeout)
		err = userRepo.EnsureIndexes(indexCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("create indexes: %w", err)
		}
		backends.Users = userRepo
		backends.HealthChecks["mongodb"] = mongoClient.Ping
	}

	// Session revocation store
	revocations, closeRevocations, err := newRevocationStore(ctx, cfg, logger, backends.HealthChecks)
	if err != nil {
		return err
	}
	defer closeRevocations()
	backends.Revocations = revocations

	deps := routes.NewHandlerDependencies(cfg, backends, logger)
	deps.RateLimiter.StartCleanup(ctx, 5*time.Minute)
	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}

func newRevocationStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger, checks map[string]handlers.HealthCheck) (repositories.SessionRevocationStore, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("no redis address configured; session revocations kept in memory")
		return memoryrepo.NewSessionRepository(), func() {}, nil
	}

	client, err := redisclient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to Redis: %w", err)
	}

	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Error("error closing redis client")
		}
	}
	return redisrepo.NewSessionRepository(client), closeClient, nil
}
