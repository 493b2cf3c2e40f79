package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-writing-assistant-be/pkg/assistant/template"
	"ai-writing-assistant-be/pkg/llm"
	"ai-writing-assistant-be/pkg/store"
)

// ErrorHandlerMiddleware translates errors bubbling out of handlers into
// the standard response envelope. Domain sentinels map to client errors,
// LLM failures map to 502, everything else stays a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		var genErr *llm.GenerationError

		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, store.ErrModeAlreadySet),
			errors.Is(err, store.ErrSubmissionInFlight):
			code = fiber.StatusConflict
			message = err.Error()
		case errors.Is(err, store.ErrUnknownMode),
			errors.Is(err, store.ErrModeNotSet),
			errors.Is(err, store.ErrEmptyDraft),
			errors.Is(err, store.ErrNoSuchHistoryEntry),
			errors.Is(err, template.ErrUnknownTemplate),
			errors.Is(err, template.ErrTemplateModeMismatch):
			code = fiber.StatusBadRequest
			message = err.Error()
		case errors.As(err, &genErr):
			code = fiber.StatusBadGateway
			message = err.Error()
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
