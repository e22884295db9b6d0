// Package fs реализует хранилище файлов поверх локальной файловой системы.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"urlnotes/internal/urlnotes/ports/storage"
)

// Права доступа к создаваемым файлам и каталогам.
const (
	FilePerm = 0o644
	DirPerm  = 0o755
)

// Константы ошибок.
const (
	ErrFailedRead   = "failed to read file"
	ErrFailedWrite  = "failed to write file"
	ErrFailedRemove = "failed to remove file"
	ErrFailedStat   = "failed to stat file"
	ErrFailedMkdir  = "failed to create directory"
)

// Backend реализует storage.Backend на локальном диске.
type Backend struct {
	atomic bool
}

var _ storage.Backend = (*Backend)(nil)

// Option настраивает Backend.
type Option func(*Backend)

// WithAtomicWrites включает запись через временный файл и переименование.
func WithAtomicWrites(enabled bool) Option {
	return func(b *Backend) {
		b.atomic = enabled
	}
}

// NewBackend создает файловое хранилище.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ReadFile читает файл целиком.
func (b *Backend) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedRead, err)
	}
	return data, nil
}

// WriteFile перезаписывает файл целиком.
func (b *Backend) WriteFile(_ context.Context, path string, data []byte) error {
	var err error
	if b.atomic {
		err = writeFileAtomic(path, data, FilePerm)
	} else {
		err = os.WriteFile(path, data, FilePerm)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFailedWrite, err)
	}
	return nil
}

// Remove удаляет файл, если он существует.
func (b *Backend) Remove(_ context.Context, path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", ErrFailedRemove, err)
	}
	return nil
}

// Stat возвращает размер и время изменения файла.
func (b *Backend) Stat(_ context.Context, path string) (storage.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.FileInfo{}, storage.ErrNotExist
	}
	if err != nil {
		return storage.FileInfo{}, fmt.Errorf("%s: %w", ErrFailedStat, err)
	}
	return storage.FileInfo{Size: info.Size(), ModTime: info.ModTime()}, nil
}

// MkdirAll создает каталог вместе с родителями.
func (b *Backend) MkdirAll(_ context.Context, dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedMkdir, err)
	}
	return nil
}
