package notification

import (
	"court-watcher/core/database"
	"court-watcher/modules/notification/repository"
	"court-watcher/modules/notification/service"
	subscriptionservice "court-watcher/modules/subscription/service"
)

// Init wires the notification module. It exposes no routes; the scanner
// invokes it at the end of each run.
func Init(db database.IDatabase, codec *subscriptionservice.TokenCodec) service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	return service.NewNotificationService(repo, codec)
}
