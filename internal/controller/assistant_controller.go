package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-writing-assistant-be/internal/dto"
	"ai-writing-assistant-be/internal/pkg/serverutils"
	"ai-writing-assistant-be/internal/service"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetState(ctx *fiber.Ctx) error
	SelectMode(ctx *fiber.Ctx) error
	UpdateDraft(ctx *fiber.Ctx) error
	ApplyTemplate(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ReplayHistory(ctx *fiber.Ctx) error
	CopyHistoryOutput(ctx *fiber.Ctx) error
	CopyText(ctx *fiber.Ctx) error
	ListModes(ctx *fiber.Ctx) error
	ListTemplates(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Get("modes", c.ListModes)
	h.Get("templates", c.ListTemplates)
	h.Post("session", c.CreateSession)
	h.Get("session/:id", c.GetState)
	h.Put("session/:id/mode", c.SelectMode)
	h.Patch("session/:id/draft", c.UpdateDraft)
	h.Post("session/:id/template", c.ApplyTemplate)
	h.Post("session/:id/submit", c.Submit)
	h.Post("session/:id/reset", c.Reset)
	h.Get("session/:id/history", c.GetHistory)
	h.Post("session/:id/history/:index/replay", c.ReplayHistory)
	h.Post("session/:id/history/:index/copy", c.CopyHistoryOutput)
	h.Post("session/:id/copy", c.CopyText)
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.assistantService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *assistantController) GetState(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.GetState(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session state", res))
}

func (c *assistantController) SelectMode(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.SelectMode(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Mode selected", res))
}

func (c *assistantController) UpdateDraft(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	// An empty draft is a valid update, it clears the editor.
	var req dto.UpdateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.UpdateDraft(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Draft updated", res))
}

func (c *assistantController) ApplyTemplate(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ApplyTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.ApplyTemplate(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template applied", res))
}

func (c *assistantController) Submit(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	// The body is optional: submitting without one sends the stored draft.
	req := new(dto.SubmitRequest)
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(req); err != nil {
			return err
		}
	}

	res, err := c.assistantService.Submit(ctx.Context(), sessionId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Submission processed", res))
}

func (c *assistantController) Reset(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.Reset(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session reset", res))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) ReplayHistory(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	index, err := historyIndexParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.ReplayHistory(ctx.Context(), sessionId, index)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("History entry replayed", res))
}

func (c *assistantController) CopyHistoryOutput(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	index, err := historyIndexParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.CopyHistoryOutput(ctx.Context(), sessionId, index)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(copyMessage(res), res))
}

func (c *assistantController) CopyText(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.CopyTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.CopyText(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(copyMessage(res), res))
}

func (c *assistantController) ListModes(ctx *fiber.Ctx) error {
	res := c.assistantService.ListModes(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get modes", res))
}

func (c *assistantController) ListTemplates(ctx *fiber.Ctx) error {
	mode := ctx.Query("mode", "")

	res, err := c.assistantService.ListTemplates(ctx.Context(), mode)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get templates", res))
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID")
	}
	return sessionId, nil
}

func historyIndexParam(ctx *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil || index < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid history index")
	}
	return index, nil
}

func copyMessage(res *dto.CopyResponse) string {
	if res.Copied {
		return "✓ Copied to clipboard!"
	}
	return "Clipboard unavailable, text returned"
}
