package openings

import (
	"court-watcher/core/database"
	"court-watcher/modules/openings/controller"
	"court-watcher/modules/openings/repository"
	"court-watcher/modules/openings/router"
	"court-watcher/modules/openings/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase) *repository.OpeningRepository {
	repo := repository.NewOpeningRepository(db)
	svc := service.NewOpeningsService(repo)
	ctrl := controller.NewOpeningsController(svc)

	router.NewOpeningsRouter(ctrl).Register(e)

	return repo
}
