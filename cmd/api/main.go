package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/api"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/config"
	httphandler "github.com/distrubuted-game-mechanic/hello-buttons/internal/http"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/skill"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/store"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/store/cassandra"
	"github.com/distrubuted-game-mechanic/hello-buttons/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel})

	sessionStore, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Error("Failed to initialize session store", logger.F("backend", cfg.StoreBackend), logger.Err(err))
		os.Exit(1)
	}
	defer closeStore()

	dispatcher := skill.NewDispatcher(log, skill.DefaultRoutes(),
		skill.WithRequestHook(skill.LogRequest(log)),
		skill.WithResponseHook(skill.LogResponse(log)),
		skill.WithResponseHook(skill.RecordMetrics()),
	)

	handler := httphandler.NewHandler(dispatcher, sessionStore, log, httphandler.Options{
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
	})

	router := newRouter(handler, log, cfg.RequestTimeout)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Server starting", logger.F("addr", cfg.Address()), logger.F("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", logger.Err(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", logger.Err(err))
		closeStore()
		os.Exit(1)
	}

	log.Info("Server exited")
}

func newRouter(handler *httphandler.Handler, log *logger.Logger, timeout time.Duration) chi.Router {
	router := chi.NewRouter()

	router.Use(api.RequestIDMiddleware)
	router.Use(middleware.RealIP)
	router.Use(api.LoggingMiddleware(log))
	router.Use(api.Metrics())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(2 * timeout))

	router.Mount("/", handler.Routes())
	return router
}

// openStore selects the attribute store backend. The returned closer is
// safe to call more than once.
func openStore(cfg *config.Config, log *logger.Logger) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendNone:
		return nil, noop, nil

	case config.BackendRedis:
		s, err := store.NewRedisStore(store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.SessionTTL,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Info("Connected to Redis", logger.F("addr", cfg.Redis.Addr))
		return s, closeOnce(s), nil

	case config.BackendCassandra:
		client, err := cassandra.NewClient(cfg.Cassandra, log)
		if err != nil {
			return nil, noop, err
		}
		repo := cassandra.NewRepository(client, log, cfg.Cassandra.Timeout, cfg.SessionTTL)
		var closed bool
		return repo, func() {
			if !closed {
				closed = true
				client.Close()
			}
		}, nil

	default:
		return store.NewMemoryStore(), noop, nil
	}
}

func closeOnce(c io.Closer) func() {
	var closed bool
	return func() {
		if !closed {
			closed = true
			_ = c.Close()
		}
	}
}
