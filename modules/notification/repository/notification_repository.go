package repository

import (
	"context"

	"court-watcher/core/database"
	"court-watcher/core/logger"
	"court-watcher/modules/notification/entity"
)

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, email, run_id, opening_count, sent_at)
		VALUES (:id, :email, :run_id, :opening_count, :sent_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		logger.Error("NotificationRepository:Create:Error:", "error", err)
		return err
	}
	return nil
}
