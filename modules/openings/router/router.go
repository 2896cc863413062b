package router

import (
	"court-watcher/modules/openings/controller"

	"github.com/labstack/echo/v4"
)

type OpeningsRouter struct {
	controller *controller.OpeningsController
}

func NewOpeningsRouter(controller *controller.OpeningsController) *OpeningsRouter {
	return &OpeningsRouter{controller: controller}
}

func (r *OpeningsRouter) Register(e *echo.Group) {
	e.GET("/openings", r.controller.List)
}
