package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"urlnotes/internal/urlnotes/adapters/cache"
	"urlnotes/internal/urlnotes/adapters/fs"
	httpServer "urlnotes/internal/urlnotes/adapters/http"
	"urlnotes/internal/urlnotes/app"
	"urlnotes/internal/urlnotes/config"
	"urlnotes/internal/urlnotes/ports/storage"
	"urlnotes/pkg/db/redis"
	"urlnotes/pkg/logger"
	"urlnotes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "URLNOTES_LOGGER_MODE"
	EnvLoggerLevel = "URLNOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrApplyFlags           = "failed to apply command line flags"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateStorageDirs    = "failed to create storage directories"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "urlnotes service started"
	LogServiceShutdownDone = "urlnotes service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStorageDirs         = "storage directories"
	LogRoute               = "route"
)

func serve(cmd *cobra.Command) error {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	defer func() {
		if err := log.Sync(); err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
				return
			}
			fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
		}
	}()

	ctx := logger.NewRequestIDContext(cmd.Context(), "")

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		log.Error(ctx, ErrApplyFlags, zap.Error(err))
		return err
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogServiceStarted,
		zap.String("version", Version),
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	log.Info(ctx, LogInitStorage, zap.Bool("atomic_writes", cfg.Storage.AtomicWrites))
	var backend storage.Backend = fs.NewBackend(fs.WithAtomicWrites(cfg.Storage.AtomicWrites))
	for _, dir := range []string{cfg.Storage.NotesDir, cfg.Storage.DrawingsDir} {
		if err := backend.MkdirAll(ctx, dir); err != nil {
			log.Error(ctx, ErrCreateStorageDirs, zap.String("dir", dir), zap.Error(err))
			return fmt.Errorf("%s: %w", ErrCreateStorageDirs, err)
		}
	}

	hooks := []shutdown.Hook{}

	if cfg.Cache.Enabled {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Cache.GetAddress()), zap.Duration("ttl", cfg.Cache.TTL))
		redisClient, err := redis.NewClient(ctx, redis.NewConfigFrom(&cfg.Cache))
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrCreateRedisClient, err)
		}
		backend = cache.NewBackend(backend, redisClient, cfg.Cache.TTL)

		// Закрытие Redis соединения.
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, "Closing Redis connection")
			return redisClient.Close()
		})
	}

	log.Info(ctx, LogInitServices)
	noteUseCase := app.NewNoteUseCase(backend, cfg.Storage.NotesDir)
	drawingUseCase := app.NewDrawingUseCase(backend, cfg.Storage.DrawingsDir)

	log.Info(ctx, LogInitHTTPServer)
	fiberApp := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
		UnescapePath: true,
	})

	httpServer.SetupRouter(fiberApp, noteUseCase, drawingUseCase)

	log.Info(ctx, LogStorageDirs,
		zap.String("notes_dir", noteUseCase.Dir()),
		zap.String("drawings_dir", drawingUseCase.Dir()))
	for _, route := range httpServer.Routes() {
		log.Info(ctx, LogRoute, zap.String("route", route))
	}

	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	var listenErr error
	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			listenErr = fmt.Errorf("%s: %w", ErrStartHTTPServer, err)
			stop()
		}
	}()

	// Остановка HTTP сервера выполняется первой в списке, но хуки идут параллельно.
	hooks = append([]shutdown.Hook{func(ctx context.Context) error {
		log.Info(ctx, LogStoppingHTTP)
		return fiberApp.ShutdownWithContext(ctx)
	}}, hooks...)

	shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(), hooks...)

	log.Info(ctx, LogServiceShutdownDone)
	return listenErr
}

// applyFlags переносит явно заданные флаги поверх загруженной конфигурации.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("host") {
		cfg.HTTP.Host = host
	}
	if flags.Changed("port") {
		if port <= 0 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.HTTP.Port = port
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("notes-dir") {
		cfg.Storage.NotesDir = notesDir
	}
	if flags.Changed("drawings-dir") {
		cfg.Storage.DrawingsDir = drawingsDir
	}

	if err := cfg.Storage.Resolve(); err != nil {
		return fmt.Errorf("resolve storage paths: %w", err)
	}
	return nil
}
