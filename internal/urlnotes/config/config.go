// Package config содержит конфигурацию сервиса заметок и рисунков.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "urlnotes/pkg/config"
	"urlnotes/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "urlnotes"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigResolved     = "configuration resolved"
	ErrFailedLoadConfig   = "failed to load configuration"
	ErrFailedResolvePaths = "failed to resolve storage paths"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Cache    CacheConfig    `yaml:"cache"`
}

// Load загружает конфигурацию из окружения, а при непустом path - из YAML-файла.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Storage.Resolve(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedResolvePaths, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigResolved,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("notes_dir", cfg.Storage.NotesDir),
		zap.String("drawings_dir", cfg.Storage.DrawingsDir),
		zap.Bool("atomic_writes", cfg.Storage.AtomicWrites),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("redis_address", cfg.Cache.GetAddress()))

	return cfg, nil
}
