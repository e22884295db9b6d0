package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"urlnotes/internal/urlnotes/adapters/fs"
	"urlnotes/internal/urlnotes/domain/entities"
	"urlnotes/internal/urlnotes/domain/services"
	"urlnotes/internal/urlnotes/ports/storage"
	"urlnotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogNoteLoaded  = "note loaded"
	LogNoteMissing = "note not found, returning empty content"
	LogNoteSaved   = "note saved"
	LogNoteDeleted = "note deleted"

	ErrGetNoteFailed    = "failed to get note"
	ErrSaveNoteFailed   = "failed to save note"
	ErrDeleteNoteFailed = "failed to delete note"
)

// NoteUseCase хранит заметки в markdown-файлах с комментарием-URL.
type NoteUseCase struct {
	backend  storage.Backend
	resolver *fs.Resolver
	clock    Clock
}

// NewNoteUseCase создает хранилище заметок в каталоге dir.
func NewNoteUseCase(backend storage.Backend, dir string, opts ...Option) *NoteUseCase {
	o := buildOptions(opts)
	return &NoteUseCase{
		backend:  backend,
		resolver: fs.NewResolver(backend, dir, entities.KindNote),
		clock:    o.clock,
	}
}

// GetNote возвращает содержимое заметки без строки с URL.
// Для отсутствующей заметки возвращается пустая строка.
func (uc *NoteUseCase) GetNote(ctx context.Context, id string) (string, error) {
	log := logger.Log(ctx).With(zap.String("url_hash", id))

	path, err := uc.resolver.Resolve(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetNoteFailed, err)
	}

	data, err := uc.backend.ReadFile(ctx, path)
	if errors.Is(err, storage.ErrNotExist) {
		log.Debug(ctx, LogNoteMissing)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetNoteFailed, err)
	}

	text := string(data)
	if url, ok := services.ExtractURL(text); ok {
		log = log.With(zap.String("source_url", url))
	}
	log.Debug(ctx, LogNoteLoaded, zap.Int("bytes", len(data)))

	return services.DecodeNote(text), nil
}

// SaveNote перезаписывает заметку целиком. Возвращает исходное содержимое,
// URL и метку времени (текущую, если не задана).
func (uc *NoteUseCase) SaveNote(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	path, err := uc.resolver.Resolve(ctx, note.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSaveNoteFailed, err)
	}

	encoded := services.EncodeNote(note.Content, note.URL)
	if err := uc.backend.WriteFile(ctx, path, []byte(encoded)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSaveNoteFailed, err)
	}

	saved := &entities.Note{
		ID:        note.ID,
		Content:   note.Content,
		URL:       note.URL,
		Timestamp: timestampOrNow(note.Timestamp, uc.clock),
	}

	logger.Log(ctx).Debug(ctx, LogNoteSaved,
		zap.String("url_hash", note.ID),
		zap.String("path", path),
		zap.Int64("timestamp", saved.Timestamp))

	return saved, nil
}

// DeleteNote удаляет заметку. Удаление отсутствующей заметки не является ошибкой.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, id string) error {
	path, err := uc.resolver.Resolve(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteNoteFailed, err)
	}

	if err := uc.backend.Remove(ctx, path); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteNoteFailed, err)
	}

	logger.Log(ctx).Debug(ctx, LogNoteDeleted, zap.String("url_hash", id), zap.String("path", path))
	return nil
}

// Dir возвращает каталог хранилища заметок.
func (uc *NoteUseCase) Dir() string {
	return uc.resolver.BaseDir()
}
