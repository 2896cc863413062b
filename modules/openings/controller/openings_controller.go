package controller

import (
	"court-watcher/core/controller"
	"court-watcher/modules/openings/service"

	"github.com/labstack/echo/v4"
)

type OpeningsController struct {
	service service.OpeningsService
	controller.BaseController
}

func NewOpeningsController(service service.OpeningsService) *OpeningsController {
	return &OpeningsController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// List returns all currently known openings.
func (c *OpeningsController) List(ctx echo.Context) error {
	openings, appErr := c.service.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, openings, "Openings retrieved successfully")
}
