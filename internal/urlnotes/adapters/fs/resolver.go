package fs

import (
	"context"
	"fmt"
	"path/filepath"

	"urlnotes/internal/urlnotes/domain/entities"
	"urlnotes/internal/urlnotes/ports/storage"
)

// ErrFailedResolve - ошибка подготовки каталога хранилища.
const ErrFailedResolve = "failed to prepare store directory"

// Resolver отображает идентификатор в путь файла хранилища.
type Resolver struct {
	backend storage.Backend
	baseDir string
	ext     string
}

// NewResolver создает Resolver для каталога и вида хранилища.
func NewResolver(backend storage.Backend, baseDir string, kind entities.Kind) *Resolver {
	return &Resolver{
		backend: backend,
		baseDir: baseDir,
		ext:     kind.Extension(),
	}
}

// Resolve возвращает {baseDir}/{id}.{ext}, предварительно создав baseDir.
// Идентификатор используется без изменений.
func (r *Resolver) Resolve(ctx context.Context, id string) (string, error) {
	if err := r.backend.MkdirAll(ctx, r.baseDir); err != nil {
		return "", fmt.Errorf("%s: %w", ErrFailedResolve, err)
	}
	return filepath.Join(r.baseDir, id+"."+r.ext), nil
}

// BaseDir возвращает каталог хранилища.
func (r *Resolver) BaseDir() string {
	return r.baseDir
}
