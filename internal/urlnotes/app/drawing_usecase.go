package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"urlnotes/internal/urlnotes/adapters/fs"
	"urlnotes/internal/urlnotes/domain/entities"
	"urlnotes/internal/urlnotes/ports/storage"
	"urlnotes/pkg/logger"
)

// Ошибки хранилища рисунков.
var (
	ErrMalformedDrawing = errors.New("stored drawing is not valid JSON")
	ErrInvalidPayload   = errors.New("drawing payload is not valid JSON")
)

// Константы ошибок и сообщений для логирования.
const (
	LogDrawingLoaded  = "drawing loaded"
	LogDrawingMissing = "drawing not found, returning null"
	LogDrawingSaved   = "drawing saved"
	LogDrawingDeleted = "drawing deleted"

	ErrGetDrawingFailed    = "failed to get drawing"
	ErrSaveDrawingFailed   = "failed to save drawing"
	ErrDeleteDrawingFailed = "failed to delete drawing"
)

// drawingIndent - отступ сохраняемого JSON.
const drawingIndent = "  "

// EmptyDrawing - содержимое рисунка по умолчанию.
const EmptyDrawing = "{}"

// DrawingUseCase хранит рисунки как JSON-файлы без метаданных.
type DrawingUseCase struct {
	backend  storage.Backend
	resolver *fs.Resolver
	clock    Clock
}

// NewDrawingUseCase создает хранилище рисунков в каталоге dir.
func NewDrawingUseCase(backend storage.Backend, dir string, opts ...Option) *DrawingUseCase {
	o := buildOptions(opts)
	return &DrawingUseCase{
		backend:  backend,
		resolver: fs.NewResolver(backend, dir, entities.KindDrawing),
		clock:    o.clock,
	}
}

// GetDrawing возвращает сохраненный JSON как есть или nil, если рисунка нет.
func (uc *DrawingUseCase) GetDrawing(ctx context.Context, id string) (json.RawMessage, error) {
	log := logger.Log(ctx).With(zap.String("url_hash", id))

	path, err := uc.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetDrawingFailed, err)
	}

	data, err := uc.backend.ReadFile(ctx, path)
	if errors.Is(err, storage.ErrNotExist) {
		log.Debug(ctx, LogDrawingMissing)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrGetDrawingFailed, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %s: %w", ErrGetDrawingFailed, path, ErrMalformedDrawing)
	}

	log.Debug(ctx, LogDrawingLoaded, zap.Int("bytes", len(data)))
	return json.RawMessage(data), nil
}

// SaveDrawing перезаписывает рисунок целиком. URL и метка времени
// возвращаются вызывающему, но не сохраняются.
func (uc *DrawingUseCase) SaveDrawing(ctx context.Context, drawing *entities.Drawing) (*entities.Drawing, error) {
	payload := NormalizePayload(drawing.Payload)

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", drawingIndent); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ErrSaveDrawingFailed, ErrInvalidPayload, err)
	}

	path, err := uc.resolver.Resolve(ctx, drawing.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSaveDrawingFailed, err)
	}

	if err := uc.backend.WriteFile(ctx, path, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSaveDrawingFailed, err)
	}

	saved := &entities.Drawing{
		ID:        drawing.ID,
		Payload:   payload,
		URL:       drawing.URL,
		Timestamp: timestampOrNow(drawing.Timestamp, uc.clock),
	}

	logger.Log(ctx).Debug(ctx, LogDrawingSaved,
		zap.String("url_hash", drawing.ID),
		zap.String("path", path),
		zap.Int("bytes", buf.Len()),
		zap.Int64("timestamp", saved.Timestamp))

	return saved, nil
}

// DeleteDrawing удаляет рисунок. Удаление отсутствующего рисунка не является ошибкой.
func (uc *DrawingUseCase) DeleteDrawing(ctx context.Context, id string) error {
	path, err := uc.resolver.Resolve(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteDrawingFailed, err)
	}

	if err := uc.backend.Remove(ctx, path); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteDrawingFailed, err)
	}

	logger.Log(ctx).Debug(ctx, LogDrawingDeleted, zap.String("url_hash", id), zap.String("path", path))
	return nil
}

// Dir возвращает каталог хранилища рисунков.
func (uc *DrawingUseCase) Dir() string {
	return uc.resolver.BaseDir()
}

// NormalizePayload заменяет отсутствующий или null payload пустым объектом.
func NormalizePayload(payload json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage(EmptyDrawing)
	}
	return payload
}
