// Package drawings содержит HTTP-обработчики для управления рисунками Excalidraw.
package drawings

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
	LogHandlerGetDrawing    = "handling get drawing request"
	LogHandlerSaveDrawing   = "handling save drawing request"
	LogHandlerDeleteDrawing = "handling delete drawing request"

	ErrMsgGetDrawing    = "failed to get drawing"
	ErrMsgSaveDrawing   = "failed to save drawing"
	ErrMsgDeleteDrawing = "failed to delete drawing"
)

// Handler обработчик HTTP-запросов для работы с рисунками.
type Handler struct {
	drawingsService services.DrawingsService
}

// NewHandler создает новый экземпляр обработчика рисунков.
func NewHandler(drawingsService services.DrawingsService) *Handler {
	return &Handler{
		drawingsService: drawingsService,
	}
}

// GetDrawing обрабатывает GET /api/excalidraw/:url_hash.
func (h *Handler) GetDrawing(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	id := ctx.Params(ParamURLHash)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetDrawing"), zap.String("url_hash", id))
	log.Debug(requestCtx, LogHandlerGetDrawing)

	drawing, err := h.drawingsService.GetDrawing(requestCtx, id)
	if err != nil {
		log.Error(requestCtx, ErrMsgGetDrawing, zap.Error(err))
		return response.ServerError(ctx, err)
	}

	return response.OK(ctx, dto.GetDrawingResponse{Drawing: drawing})
}

// SaveDrawing обрабатывает POST /api/excalidraw/:url_hash.
func (h *Handler) SaveDrawing(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	id := ctx.Params(ParamURLHash)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveDrawing"), zap.String("url_hash", id))
	log.Debug(requestCtx, LogHandlerSaveDrawing)

	req := dto.ParseSaveDrawingRequest(ctx.Body())

	drawing, err := h.drawingsService.SaveDrawing(requestCtx, req.ToEntity(id))
	if err != nil {
		log.Error(requestCtx, ErrMsgSaveDrawing, zap.Error(err))
		return response.ServerError(ctx, err)
	}

	return response.OK(ctx, dto.NewSaveDrawingResponse(drawing))
}

// DeleteDrawing обрабатывает DELETE /api/excalidraw/:url_hash.
func (h *Handler) DeleteDrawing(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	id := ctx.Params(ParamURLHash)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteDrawing"), zap.String("url_hash", id))
	log.Debug(requestCtx, LogHandlerDeleteDrawing)

	if err := h.drawingsService.DeleteDrawing(requestCtx, id); err != nil {
		log.Error(requestCtx, ErrMsgDeleteDrawing, zap.Error(err))
		return response.ServerError(ctx, err)
	}

	return response.OK(ctx, dto.NewDeleteResponse(id))
}
