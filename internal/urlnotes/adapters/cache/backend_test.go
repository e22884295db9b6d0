package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlnotes/internal/urlnotes/adapters/cache"
	"urlnotes/internal/urlnotes/adapters/fs"
	"urlnotes/internal/urlnotes/adapters/memory"
	"urlnotes/internal/urlnotes/app"
	"urlnotes/internal/urlnotes/domain/entities"
	"urlnotes/internal/urlnotes/ports/storage"
	"urlnotes/pkg/db/redis"
)

const testPath = "/notes/abc.md"

func newRedisClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port

	client, err := redis.NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, s
}

func newCachedBackend(t *testing.T) (*cache.Backend, *memory.Backend, *miniredis.Miniredis) {
	t.Helper()

	client, s := newRedisClient(t)
	inner := memory.NewBackend()
	return cache.NewBackend(inner, client, time.Minute), inner, s
}

func TestBackend_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backend, inner, s := newCachedBackend(t)

	require.NoError(t, inner.WriteFile(ctx, testPath, []byte("from disk")))

	data, err := backend.ReadFile(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "from disk", string(data))

	cached, err := s.Get(cache.KeyPrefix + testPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(cached, "\nfrom disk"))
	assert.Equal(t, time.Minute, s.TTL(cache.KeyPrefix+testPath))

	// Подменяем тело записи, сохраняя версию: ответ должен прийти из кэша.
	require.NoError(t, s.Set(cache.KeyPrefix+testPath, strings.TrimSuffix(cached, "from disk")+"FROM DISK"))

	data, err = backend.ReadFile(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "FROM DISK", string(data))
}

func TestBackend_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	backend, _, s := newCachedBackend(t)

	_, err := backend.ReadFile(ctx, testPath)
	assert.ErrorIs(t, err, storage.ErrNotExist)
	assert.False(t, s.Exists(cache.KeyPrefix+testPath))
}

func TestBackend_WriteAndRemoveEvict(t *testing.T) {
	ctx := context.Background()
	backend, inner, s := newCachedBackend(t)

	require.NoError(t, backend.WriteFile(ctx, testPath, []byte("v1")))
	_, err := backend.ReadFile(ctx, testPath)
	require.NoError(t, err)
	assert.True(t, s.Exists(cache.KeyPrefix+testPath))

	require.NoError(t, backend.WriteFile(ctx, testPath, []byte("v2")))
	assert.False(t, s.Exists(cache.KeyPrefix+testPath))

	data, err := backend.ReadFile(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	onDisk, err := inner.ReadFile(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(onDisk))

	require.NoError(t, backend.Remove(ctx, testPath))
	assert.False(t, s.Exists(cache.KeyPrefix+testPath))

	_, err = backend.Stat(ctx, testPath)
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestBackend_FileChangedOutsideService(t *testing.T) {
	ctx := context.Background()
	client, s := newRedisClient(t)
	backend := cache.NewBackend(fs.NewBackend(), client, 15*time.Minute)

	dir := t.TempDir()
	path := filepath.Join(dir, "h.md")

	require.NoError(t, backend.WriteFile(ctx, path, []byte("hello")))
	data, err := backend.ReadFile(ctx, path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
	require.True(t, s.Exists(cache.KeyPrefix+path))

	t.Run("rewritten with other size", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("edited by user"), 0o644))

		data, err := backend.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "edited by user", string(data))
	})

	t.Run("rewritten with same size", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("EDITED BY USER"), 0o644))
		later := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		data, err := backend.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "EDITED BY USER", string(data))
	})

	t.Run("removed", func(t *testing.T) {
		require.NoError(t, os.Remove(path))

		_, err := backend.ReadFile(ctx, path)
		assert.ErrorIs(t, err, storage.ErrNotExist)
		assert.False(t, s.Exists(cache.KeyPrefix+path))
	})
}

func TestBackend_NoteUseCaseSeesDiskChanges(t *testing.T) {
	ctx := context.Background()
	client, _ := newRedisClient(t)
	backend := cache.NewBackend(fs.NewBackend(), client, 15*time.Minute)

	dir := t.TempDir()
	notes := app.NewNoteUseCase(backend, dir)

	_, err := notes.SaveNote(ctx, &entities.Note{ID: "h", Content: "hello", URL: "http://x"})
	require.NoError(t, err)

	content, err := notes.GetNote(ctx, "h")
	require.NoError(t, err)
	require.Equal(t, "hello", content)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "h.md"), []byte("edited by user"), 0o644))
	content, err = notes.GetNote(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, "edited by user", content)

	require.NoError(t, os.Remove(filepath.Join(dir, "h.md")))
	content, err = notes.GetNote(ctx, "h")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestBackend_FallsBackWhenCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	backend, inner, s := newCachedBackend(t)

	require.NoError(t, inner.WriteFile(ctx, testPath, []byte("disk")))
	s.Close()

	data, err := backend.ReadFile(ctx, testPath)
	require.NoError(t, err)
	assert.Equal(t, "disk", string(data))

	require.NoError(t, backend.WriteFile(ctx, testPath, []byte("new")))
	require.NoError(t, backend.Remove(ctx, testPath))
	assert.Equal(t, 0, inner.Len())
}
