package controller

import (
	"court-watcher/core/controller"
	"court-watcher/modules/scanner/dto"
	"court-watcher/modules/scanner/service"

	"github.com/labstack/echo/v4"
)

type ScannerController struct {
	service service.ScannerService
	controller.BaseController
}

func NewScannerController(service service.ScannerService) *ScannerController {
	return &ScannerController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Trigger enqueues an immediate scan.
func (c *ScannerController) Trigger(ctx echo.Context) error {
	if appErr := c.service.EnqueueScan(ctx.Request().Context()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, dto.EnqueueScanResponse{Enqueued: true}, "Scan enqueued successfully")
}

// Status returns the summary of the most recent scan run.
func (c *ScannerController) Status(ctx echo.Context) error {
	status, appErr := c.service.Status(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, status, "Scan status retrieved successfully")
}
