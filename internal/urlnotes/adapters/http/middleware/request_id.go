// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"urlnotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// localsRequestContext - ключ Locals с контекстом запроса.
const localsRequestContext = "requestContext"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует
// новый, кладет его в контекст запроса и в заголовок ответа.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))

		id, _ := logger.GetRequestID(requestCtx)
		ctx.Set(HeaderRequestID, id)
		ctx.Locals(localsRequestContext, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request_id.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context() // Запасной вариант
}
