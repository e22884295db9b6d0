// Package cache содержит кэширующую обертку над файловым хранилищем.
package cache

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"urlnotes/internal/urlnotes/ports/cache"
	"urlnotes/internal/urlnotes/ports/storage"
	"urlnotes/pkg/db/redis"
	"urlnotes/pkg/logger"
)

// KeyPrefix - префикс ключей кэша.
const KeyPrefix = "urlnotes:file:"

// Константы для логирования.
const (
	LogCacheHit          = "cache hit"
	LogCacheStale        = "cached entry is stale, reading storage"
	LogCacheGetFailed    = "cache get failed, falling back to storage"
	LogCacheSetFailed    = "cache set failed"
	LogCacheDeleteFailed = "cache delete failed"
)

// Backend реализует storage.Backend, кэшируя содержимое файлов.
// Файл остается источником истины: запись кэша действительна, пока совпадают
// размер и время изменения файла, а ошибки кэша только логируются.
type Backend struct {
	inner storage.Backend
	cache cache.Cache
	ttl   time.Duration
}

var _ storage.Backend = (*Backend)(nil)

// NewBackend создает кэширующую обертку над inner.
func NewBackend(inner storage.Backend, c cache.Cache, ttl time.Duration) *Backend {
	return &Backend{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

func key(path string) string {
	return KeyPrefix + path
}

// encodeEntry кладет перед содержимым строку "<mtime_ns> <size>".
func encodeEntry(info storage.FileInfo, data []byte) []byte {
	header := strconv.FormatInt(info.ModTime.UnixNano(), 10) + " " + strconv.FormatInt(info.Size, 10) + "\n"
	return append([]byte(header), data...)
}

// decodeEntry возвращает содержимое записи, если она соответствует версии файла info.
func decodeEntry(entry []byte, info storage.FileInfo) ([]byte, bool) {
	header, data, ok := bytes.Cut(entry, []byte("\n"))
	if !ok {
		return nil, false
	}
	modTime, size, ok := strings.Cut(string(header), " ")
	if !ok {
		return nil, false
	}
	ns, err := strconv.ParseInt(modTime, 10, 64)
	if err != nil {
		return nil, false
	}
	n, err := strconv.ParseInt(size, 10, 64)
	if err != nil || n != int64(len(data)) {
		return nil, false
	}
	if !info.Same(storage.FileInfo{Size: n, ModTime: time.Unix(0, ns)}) {
		return nil, false
	}
	return data, true
}

// ReadFile отдает содержимое из кэша, только если файл не изменился
// с момента кэширования. Иначе читает файл и обновляет кэш.
func (b *Backend) ReadFile(ctx context.Context, path string) ([]byte, error) {
	log := logger.Log(ctx).With(zap.String("path", path))

	info, err := b.inner.Stat(ctx, path)
	if errors.Is(err, storage.ErrNotExist) {
		b.evict(ctx, path)
		return nil, storage.ErrNotExist
	}
	if err != nil {
		return nil, err
	}

	entry, err := b.cache.Get(ctx, key(path))
	switch {
	case err == nil:
		if data, ok := decodeEntry(entry, info); ok {
			log.Debug(ctx, LogCacheHit)
			return data, nil
		}
		log.Debug(ctx, LogCacheStale)
	case !errors.Is(err, redis.ErrCacheMiss):
		log.Warn(ctx, LogCacheGetFailed, zap.Error(err))
	}

	data, err := b.inner.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			b.evict(ctx, path)
		}
		return nil, err
	}

	// Файл мог измениться между Stat и чтением: такую запись не кэшируем.
	if int64(len(data)) == info.Size {
		b.store(ctx, path, info, data)
	}
	return data, nil
}

// WriteFile пишет файл и сбрасывает ключ кэша. Кэш заполняется при следующем чтении.
func (b *Backend) WriteFile(ctx context.Context, path string, data []byte) error {
	err := b.inner.WriteFile(ctx, path, data)
	b.evict(ctx, path)
	return err
}

// Remove удаляет файл и ключ кэша.
func (b *Backend) Remove(ctx context.Context, path string) error {
	err := b.inner.Remove(ctx, path)
	b.evict(ctx, path)
	return err
}

func (b *Backend) Stat(ctx context.Context, path string) (storage.FileInfo, error) {
	return b.inner.Stat(ctx, path)
}

func (b *Backend) MkdirAll(ctx context.Context, dir string) error {
	return b.inner.MkdirAll(ctx, dir)
}

func (b *Backend) store(ctx context.Context, path string, info storage.FileInfo, data []byte) {
	if err := b.cache.Set(ctx, key(path), encodeEntry(info, data), b.ttl); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheSetFailed, zap.String("path", path), zap.Error(err))
	}
}

func (b *Backend) evict(ctx context.Context, path string) {
	if err := b.cache.Delete(ctx, key(path)); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheDeleteFailed, zap.String("path", path), zap.Error(err))
	}
}
