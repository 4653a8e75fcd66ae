package controller

import (
	"errors"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/pkg/serverutils"
	"chargeflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IEngineController exposes the batch engine for manual runs. The same
// operations run unattended on the scheduler; these routes exist for
// operators who need a run now rather than at the next tick.
type IEngineController interface {
	RegisterRoutes(r fiber.Router)
	Reconcile(ctx *fiber.Ctx) error
	Dispatch(ctx *fiber.Ctx) error
	RecalculateScores(ctx *fiber.Ctx) error
	ScoreClient(ctx *fiber.Ctx) error
	RiskStatistics(ctx *fiber.Ctx) error
}

type engineController struct {
	reconcilerService service.IReconcilerService
	dispatcherService service.IDispatcherService
	riskService       service.IRiskService
	reportService     service.IReportService
}

func NewEngineController(
	reconcilerService service.IReconcilerService,
	dispatcherService service.IDispatcherService,
	riskService service.IRiskService,
	reportService service.IReportService,
) IEngineController {
	return &engineController{
		reconcilerService: reconcilerService,
		dispatcherService: dispatcherService,
		riskService:       riskService,
		reportService:     reportService,
	}
}

func (c *engineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/engine")
	h.Use(serverutils.JwtMiddleware)
	h.Post("reconcile", c.Reconcile)
	h.Post("dispatch", c.Dispatch)
	h.Post("scores/recalculate", c.RecalculateScores)
	h.Post("scores/clients/:id", c.ScoreClient)
	h.Get("scores/statistics", c.RiskStatistics)
}

func (c *engineController) Reconcile(ctx *fiber.Ctx) error {
	report, err := c.reconcilerService.ReconcilePayments(ctx.Context())
	if err != nil {
		return err
	}
	c.reportService.Deliver(report)

	return ctx.JSON(serverutils.SuccessResponse("Reconciliation batch completed", report))
}

func (c *engineController) Dispatch(ctx *fiber.Ctx) error {
	report, err := c.dispatcherService.DispatchDue(ctx.Context())
	if err != nil {
		return err
	}
	c.reportService.Deliver(report)

	return ctx.JSON(serverutils.SuccessResponse("Dispatch batch completed", report))
}

func (c *engineController) RecalculateScores(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	updated, err := c.riskService.ScoreAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Score recalculation completed", fiber.Map{"updated": updated}))
}

func (c *engineController) ScoreClient(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	clientId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid client id")
	}

	score, err := c.riskService.Score(ctx.Context(), userId, clientId)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Client not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Client scored", fiber.Map{
		"score": score,
		"band":  entity.BandForScore(score),
	}))
}

func (c *engineController) RiskStatistics(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	stats, err := c.riskService.Statistics(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get risk statistics", stats))
}
