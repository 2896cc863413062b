package router

import (
	"court-watcher/modules/scanner/controller"

	"github.com/labstack/echo/v4"
)

type ScannerRouter struct {
	controller *controller.ScannerController
}

func NewScannerRouter(controller *controller.ScannerController) *ScannerRouter {
	return &ScannerRouter{controller: controller}
}

func (r *ScannerRouter) Register(e *echo.Group) {
	e.POST("/scan", r.controller.Trigger)
	e.GET("/scan/status", r.controller.Status)
}
