package subscription

import (
	"court-watcher/core/database"
	"court-watcher/modules/subscription/controller"
	"court-watcher/modules/subscription/repository"
	"court-watcher/modules/subscription/router"
	"court-watcher/modules/subscription/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, codec *service.TokenCodec) *repository.SubscriptionRepository {
	repo := repository.NewSubscriptionRepository(db)
	svc := service.NewSubscriptionService(repo, codec)
	ctrl := controller.NewSubscriptionController(svc)

	router.NewSubscriptionRouter(ctrl).Register(e)

	return repo
}
