// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"urlnotes/internal/urlnotes/adapters/http/middleware"
	"urlnotes/internal/urlnotes/adapters/http/response"
	"urlnotes/internal/urlnotes/app/dto"
	"urlnotes/internal/urlnotes/ports/services"
	"urlnotes/pkg/logger"
)

// ParamURLHash - имя параметра маршрута с идентификатором.
const ParamURLHash = "url_hash"

// Константы сообщений для логирования.
const (
	LogHandlerGetNote    = "handling get note request"
	LogHandlerSaveNote   = "handling save note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgGetNote    = "failed to get note"
	ErrMsgSaveNote   = "failed to save note"
	ErrMsgDeleteNote = "failed to delete note"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService services.NotesService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService services.NotesService) *Handler {
	return &Handler{
		notesService: notesService,
	}
}

// GetNote обрабатывает GET /api/notes/:url_hash.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	id := ctx.Params(ParamURLHash)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"), zap.String("url_hash", id))
	log.Debug(requestCtx, LogHandlerGetNote)

	content, err := h.notesService.GetNote(requestCtx, id)
	if err != nil {
		log.Error(requestCtx, ErrMsgGetNote, zap.Error(err))
		return response.ServerError(ctx, err)
	}

	return response.OK(ctx, dto.GetNoteResponse{Note: content})
}

// SaveNote обрабатывает POST /api/notes/:url_hash.
func (h *Handler) SaveNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	id := ctx.Params(ParamURLHash)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveNote"), zap.String("url_hash", id))
	log.Debug(requestCtx, LogHandlerSaveNote)

	req := dto.ParseSaveNoteRequest(ctx.Body())

	note, err := h.notesService.SaveNote(requestCtx, req.ToEntity(id))
	if err != nil {
		log.Error(requestCtx, ErrMsgSaveNote, zap.Error(err))
		return response.ServerError(ctx, err)
	}

	return response.OK(ctx, dto.NewSaveNoteResponse(note))
}

// DeleteNote обрабатывает DELETE /api/notes/:url_hash.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	id := ctx.Params(ParamURLHash)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"), zap.String("url_hash", id))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	if err := h.notesService.DeleteNote(requestCtx, id); err != nil {
		log.Error(requestCtx, ErrMsgDeleteNote, zap.Error(err))
		return response.ServerError(ctx, err)
	}

	return response.OK(ctx, dto.NewDeleteResponse(id))
}
