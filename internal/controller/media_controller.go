package controller

import (
	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/pkg/serverutils"
	"ai-videobrain-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Library(ctx *fiber.Ctx) error
	Link(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type mediaController struct {
	mediaService service.IMediaService
}

func NewMediaController(mediaService service.IMediaService) IMediaController {
	return &mediaController{
		mediaService: mediaService,
	}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/media/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("search", c.Search)
	h.Get("library/:project_id", c.Library)
	h.Post("", c.Create)
	h.Post(":id/link", c.Link)
}

func (c *mediaController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateAssetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mediaService.CreateAsset(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create asset", res))
}

func (c *mediaController) Library(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	projectId, err := uuid.Parse(ctx.Params("project_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid project id")
	}

	res, err := c.mediaService.ListLibrary(ctx.Context(), userId, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get library", res))
}

func (c *mediaController) Link(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	assetId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid asset id")
	}

	var req dto.LinkAssetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.mediaService.LinkAsset(ctx.Context(), userId, assetId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success link asset", fiber.Map{}))
}

func (c *mediaController) Search(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Query parameter 'q' is required")
	}

	res, err := c.mediaService.SearchAssets(ctx.Context(), userId, query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search assets", res))
}
