package services

import (
	"context"
	"encoding/json"

	"urlnotes/internal/urlnotes/domain/entities"
)

// DrawingsService определяет операции хранилища рисунков.
type DrawingsService interface {
	// GetDrawing возвращает nil, если рисунка нет.
	GetDrawing(ctx context.Context, id string) (json.RawMessage, error)
	SaveDrawing(ctx context.Context, drawing *entities.Drawing) (*entities.Drawing, error)
	DeleteDrawing(ctx context.Context, id string) error
}
