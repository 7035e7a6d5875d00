package controller

import (
	"ai-videobrain-be/internal/pkg/serverutils"
	"ai-videobrain-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISceneController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type sceneController struct {
	sceneService service.ISceneService
}

func NewSceneController(sceneService service.ISceneService) ISceneController {
	return &sceneController{
		sceneService: sceneService,
	}
}

func (c *sceneController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/scene/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get(":project_id", c.List)
}

func (c *sceneController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("project_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	res, err := c.sceneService.List(ctx.Context(), userId, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get scenes", res))
}
