package controller

import (
	"errors"

	"chargeflow-be/internal/dto"
	"chargeflow-be/internal/pkg/serverutils"
	"chargeflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICampaignController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Execute(ctx *fiber.Ctx) error
}

type campaignController struct {
	campaignService service.ICampaignService
}

func NewCampaignController(campaignService service.ICampaignService) ICampaignController {
	return &campaignController{
		campaignService: campaignService,
	}
}

func (c *campaignController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/campaigns")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Post(":id/execute", c.Execute)
}

func (c *campaignController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.campaignService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create campaign", res))
}

func (c *campaignController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.campaignService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get campaigns", res))
}

func (c *campaignController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	res, err := c.campaignService.Get(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Campaign not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get campaign", res))
}

func (c *campaignController) Execute(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid campaign id")
	}

	res, err := c.campaignService.Execute(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Campaign not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute campaign", res))
}
