// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"urlnotes/internal/urlnotes/adapters/http/drawings"
	"urlnotes/internal/urlnotes/adapters/http/middleware"
	"urlnotes/internal/urlnotes/adapters/http/notes"
	"urlnotes/internal/urlnotes/adapters/http/response"
	"urlnotes/internal/urlnotes/app/dto"
	"urlnotes/internal/urlnotes/ports/services"
)

// Маршруты API.
const (
	NotesPath    = "/api/notes"
	DrawingsPath = "/api/excalidraw"
	HealthPath   = "/health"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, notesService services.NotesService, drawingsService services.DrawingsService) {
	notesHandler := notes.NewHandler(notesService)
	drawingsHandler := drawings.NewHandler(drawingsService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
			fiber.MethodHead,
			fiber.MethodOptions,
		},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))

	app.Get(HealthPath, func(ctx fiber.Ctx) error {
		return response.OK(ctx, dto.HealthResponse{Status: dto.StatusOK})
	})

	notesRoutes := app.Group(NotesPath)
	notesRoutes.Get("/:"+notes.ParamURLHash, notesHandler.GetNote)
	notesRoutes.Post("/:"+notes.ParamURLHash, notesHandler.SaveNote)
	notesRoutes.Delete("/:"+notes.ParamURLHash, notesHandler.DeleteNote)

	drawingsRoutes := app.Group(DrawingsPath)
	drawingsRoutes.Get("/:"+drawings.ParamURLHash, drawingsHandler.GetDrawing)
	drawingsRoutes.Post("/:"+drawings.ParamURLHash, drawingsHandler.SaveDrawing)
	drawingsRoutes.Delete("/:"+drawings.ParamURLHash, drawingsHandler.DeleteDrawing)

	// Обработчик для несуществующих маршрутов.
	app.Use(response.NotFound)
}

// Routes возвращает список маршрутов API для журнала запуска.
func Routes() []string {
	return []string{
		fiber.MethodGet + "    " + NotesPath + "/<urlHash>",
		fiber.MethodPost + "   " + NotesPath + "/<urlHash>",
		fiber.MethodDelete + " " + NotesPath + "/<urlHash>",
		fiber.MethodGet + "    " + DrawingsPath + "/<urlHash>",
		fiber.MethodPost + "   " + DrawingsPath + "/<urlHash>",
		fiber.MethodDelete + " " + DrawingsPath + "/<urlHash>",
	}
}
