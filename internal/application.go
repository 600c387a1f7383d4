package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-tutorial/internal/catalog"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/config"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/repository"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-tutorial/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-tutorial/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the HTTP server until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sessionRepo, closeRepo, err := NewSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close session storage", "error", err)
		}
	}()

	products, err := catalog.Load(conf.CatalogPath)
	if err != nil {
		return fmt.Errorf("could not load product catalog: %w", err)
	}

	stats := metrics.New()
	gameManager := usecase.NewGameManager(logger, sessionRepo, stats)
	productManager := usecase.NewProductManager(logger, sessionRepo, products, stats)
	server := rest.New(logger, gameManager, productManager, stats)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "session_store", conf.SessionStore)

	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// NewSessionRepository - picks the session store from config. The returned func releases its connection.
func NewSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.SessionStore {
	case config.SessionStoreRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewSessionRepository(redisStorage.Connection, conf.SessionTTL), redisStorage.Close, nil
	case config.SessionStoreMemory:
		return repository.NewMemorySessionRepository(conf.SessionTTL), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownSessionStore, conf.SessionStore)
	}
}
