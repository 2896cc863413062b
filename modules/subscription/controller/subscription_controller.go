package controller

import (
	"court-watcher/core/controller"
	"court-watcher/core/errors"
	"court-watcher/modules/subscription/dto"
	"court-watcher/modules/subscription/service"

	"github.com/labstack/echo/v4"
)

type SubscriptionController struct {
	service service.SubscriptionService
	controller.BaseController
}

func NewSubscriptionController(service service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// Subscribe replaces all filters stored for the request's email.
func (c *SubscriptionController) Subscribe(ctx echo.Context) error {
	var req dto.SubscriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", err.Error())
	}

	if appErr := c.service.Subscribe(ctx.Request().Context(), &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Subscription saved successfully")
}

// Unsubscribe removes every filter for the email inside the token.
func (c *SubscriptionController) Unsubscribe(ctx echo.Context) error {
	token := ctx.Param("token")
	if token == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing unsubscribe token")
	}

	result, appErr := c.service.Unsubscribe(ctx.Request().Context(), token)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Unsubscribed successfully")
}
