// Package services определяет интерфейсы сервисов для HTTP слоя.
package services

import (
	"context"

	"urlnotes/internal/urlnotes/domain/entities"
)

// NotesService определяет операции хранилища заметок.
type NotesService interface {
	GetNote(ctx context.Context, id string) (string, error)
	SaveNote(ctx context.Context, note *entities.Note) (*entities.Note, error)
	DeleteNote(ctx context.Context, id string) error
}
