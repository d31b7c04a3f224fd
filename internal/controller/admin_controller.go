package controller

import (
	"github.com/gofiber/fiber/v2"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/pkg/logger"
	"techgear-support-be/internal/pkg/serverutils"
	"techgear-support-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type adminController struct {
	ingestService service.IIngestService
	zapLogger     *logger.ZapLogger
}

func NewAdminController(ingestService service.IIngestService, zapLogger *logger.ZapLogger) IAdminController {
	return &adminController{
		ingestService: ingestService,
		zapLogger:     zapLogger,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("logs", c.GetLogs)
	h.Post("reindex", c.Reindex)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.zapLogger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("System logs", dto.AdminLogsResponse{
		Logs:  logs,
		Total: len(logs),
	}))
}

func (c *adminController) Reindex(ctx *fiber.Ctx) error {
	if c.ingestService == nil {
		return serverutils.ErrServiceUnavailable
	}

	res, err := c.ingestService.Reindex(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Catalog reindex queued", res))
}
