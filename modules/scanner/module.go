package scanner

import (
	"court-watcher/core/cache"
	"court-watcher/core/config"
	notificationservice "court-watcher/modules/notification/service"
	openingsrepository "court-watcher/modules/openings/repository"
	openingsservice "court-watcher/modules/openings/service"
	"court-watcher/modules/scanner/controller"
	"court-watcher/modules/scanner/router"
	"court-watcher/modules/scanner/service"
	subscriptionrepository "court-watcher/modules/subscription/repository"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

func Init(
	e *echo.Group,
	cfg *config.Config,
	openingRepo *openingsrepository.OpeningRepository,
	subscriptionRepo *subscriptionrepository.SubscriptionRepository,
	notifier notificationservice.NotificationService,
	c cache.Cache,
	client *asynq.Client,
) service.ScannerService {
	fetcher := service.NewFetcher(cfg.Scan, cfg.Provider)
	urlBuilder := openingsservice.NewURLBuilder(cfg.Provider.SiteID)

	svc := service.NewScannerService(fetcher, openingRepo, subscriptionRepo, notifier, urlBuilder, c, client)
	ctrl := controller.NewScannerController(svc)

	router.NewScannerRouter(ctrl).Register(e)

	return svc
}
