package config

import (
	"fmt"
	"time"
)

// CacheConfig представляет конфигурацию необязательного кэша Redis.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled" env:"URLNOTES_CACHE_ENABLED" env-default:"false"`
	TTL      time.Duration `yaml:"ttl" env:"URLNOTES_CACHE_TTL" env-default:"15m"`
	Host     string        `yaml:"host" env:"URLNOTES_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"URLNOTES_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"URLNOTES_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"URLNOTES_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"URLNOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"URLNOTES_REDIS_TIMEOUT" env-default:"3s"`
}

// GetAddress возвращает адрес Redis.
func (c *CacheConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *CacheConfig) GetHost() string           { return c.Host }
func (c *CacheConfig) GetPort() int              { return c.Port }
func (c *CacheConfig) GetPassword() string       { return c.Password }
func (c *CacheConfig) GetDB() int                { return c.DB }
func (c *CacheConfig) GetPoolSize() int          { return c.PoolSize }
func (c *CacheConfig) GetTimeout() time.Duration { return c.Timeout }
