package router

import (
	"court-watcher/modules/subscription/controller"

	"github.com/labstack/echo/v4"
)

type SubscriptionRouter struct {
	controller *controller.SubscriptionController
}

func NewSubscriptionRouter(controller *controller.SubscriptionController) *SubscriptionRouter {
	return &SubscriptionRouter{controller: controller}
}

func (r *SubscriptionRouter) Register(e *echo.Group) {
	e.POST("/subscriptions", r.controller.Subscribe)
	e.GET("/unsubscribe/:token", r.controller.Unsubscribe)
}
