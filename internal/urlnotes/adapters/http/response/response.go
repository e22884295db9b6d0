// Package response содержит общие функции формирования HTTP ответов.
package response

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"urlnotes/internal/urlnotes/app/dto"
)

// ServerErrorPrefix - префикс сообщения об ошибке сервера.
const ServerErrorPrefix = "Server error: "

// OK отправляет body со статусом 200.
func OK(ctx fiber.Ctx, body any) error {
	if err := ctx.Status(fiber.StatusOK).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ServerError отправляет единый ответ 500 с текстом ошибки.
func ServerError(ctx fiber.Ctx, cause error) error {
	if err := ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Detail: ServerErrorPrefix + cause.Error(),
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}

// NotFound отправляет ответ 404 для неизвестного маршрута.
func NotFound(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Detail: "Not Found",
	}); err != nil {
		return fmt.Errorf("error sending 404 response: %w", err)
	}
	return nil
}
