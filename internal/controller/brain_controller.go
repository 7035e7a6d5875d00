package controller

import (
	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/pkg/serverutils"
	"ai-videobrain-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBrainController interface {
	RegisterRoutes(r fiber.Router)
	Decide(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type brainController struct {
	brainService service.IBrainService
}

func NewBrainController(brainService service.IBrainService) IBrainController {
	return &brainController{
		brainService: brainService,
	}
}

func (c *brainController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/brain/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("decide", c.Decide)
	h.Get("history/:project_id", c.History)
}

func (c *brainController) Decide(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.DecideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.brainService.Decide(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success decide", res))
}

func (c *brainController) History(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("project_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	res, err := c.brainService.History(ctx.Context(), userId, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}
