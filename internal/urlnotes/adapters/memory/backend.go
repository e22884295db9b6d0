// Package memory реализует хранилище файлов в памяти для тестов.
package memory

import (
	"context"
	"sync"
	"time"

	"urlnotes/internal/urlnotes/ports/storage"
)

// Backend хранит файлы в map по полному пути.
type Backend struct {
	mu    sync.RWMutex
	files map[string]file
	dirs  map[string]struct{}
}

type file struct {
	data    []byte
	modTime time.Time
}

var _ storage.Backend = (*Backend)(nil)

// NewBackend создает пустое хранилище.
func NewBackend() *Backend {
	return &Backend{
		files: make(map[string]file),
		dirs:  make(map[string]struct{}),
	}
}

func (b *Backend) ReadFile(_ context.Context, path string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f, ok := b.files[path]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return append([]byte(nil), f.data...), nil
}

func (b *Backend) WriteFile(_ context.Context, path string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.files[path] = file{data: append([]byte(nil), data...), modTime: time.Now()}
	return nil
}

func (b *Backend) Remove(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.files, path)
	return nil
}

func (b *Backend) Stat(_ context.Context, path string) (storage.FileInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f, ok := b.files[path]
	if !ok {
		return storage.FileInfo{}, storage.ErrNotExist
	}
	return storage.FileInfo{Size: int64(len(f.data)), ModTime: f.modTime}, nil
}

func (b *Backend) MkdirAll(_ context.Context, dir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.dirs[dir] = struct{}{}
	return nil
}

// HasDir сообщает, создавался ли каталог.
func (b *Backend) HasDir(dir string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.dirs[dir]
	return ok
}

// Len возвращает число хранимых файлов.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.files)
}
