// Package storage определяет интерфейс файлового хранилища.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotExist возвращается при чтении отсутствующего файла.
var ErrNotExist = errors.New("file does not exist")

// FileInfo описывает версию файла: файл считается неизменным,
// пока совпадают размер и время изменения.
type FileInfo struct {
	Size    int64
	ModTime time.Time
}

// Same сообщает, описывают ли info и other одну и ту же версию файла.
func (info FileInfo) Same(other FileInfo) bool {
	return info.Size == other.Size && info.ModTime.Equal(other.ModTime)
}

// Backend абстрагирует операции с файлами, чтобы хранилища можно было
// тестировать без реальной файловой системы.
type Backend interface {
	// ReadFile возвращает содержимое файла или ErrNotExist.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile полностью перезаписывает файл.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Remove удаляет файл. Отсутствие файла не является ошибкой.
	Remove(ctx context.Context, path string) error

	// Stat возвращает размер и время изменения файла или ErrNotExist.
	Stat(ctx context.Context, path string) (FileInfo, error)

	// MkdirAll создает каталог вместе с родителями.
	MkdirAll(ctx context.Context, dir string) error
}
