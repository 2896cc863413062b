package repository

import (
	"context"

	"court-watcher/core/database"
	"court-watcher/core/logger"
	"court-watcher/modules/subscription/entity"
)

type SubscriptionRepository struct {
	db database.IDatabase
}

func NewSubscriptionRepository(db database.IDatabase) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetAll returns every stored subscription filter.
func (r *SubscriptionRepository) GetAll(ctx context.Context) ([]entity.Subscription, error) {
	query := `
		SELECT id, email, weekdays, min_start_hour, max_end_hour, hour_length, created_at
		FROM subscriptions
		ORDER BY email, created_at
	`
	var subscriptions []entity.Subscription
	err := r.db.SelectContext(ctx, &subscriptions, query)
	if err != nil {
		logger.Error("SubscriptionRepository:GetAll:Error:", "error", err)
		return nil, err
	}
	return subscriptions, nil
}

// ReplaceForEmail swaps every filter stored for the email in one transaction.
func (r *SubscriptionRepository) ReplaceForEmail(ctx context.Context, email string, subscriptions []entity.Subscription) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("SubscriptionRepository:ReplaceForEmail:Begin:Error:", "error", err)
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subscriptions WHERE email = $1`, email); err != nil {
		logger.Error("SubscriptionRepository:ReplaceForEmail:Delete:Error:", "error", err)
		return err
	}

	if len(subscriptions) > 0 {
		insert := `
			INSERT INTO subscriptions (id, email, weekdays, min_start_hour, max_end_hour, hour_length, created_at)
			VALUES (:id, :email, :weekdays, :min_start_hour, :max_end_hour, :hour_length, :created_at)
		`
		if _, err := tx.NamedExecContext(ctx, insert, subscriptions); err != nil {
			logger.Error("SubscriptionRepository:ReplaceForEmail:Insert:Error:", "error", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("SubscriptionRepository:ReplaceForEmail:Commit:Error:", "error", err)
		return err
	}
	return nil
}

// DeleteByEmail removes every filter for the email.
func (r *SubscriptionRepository) DeleteByEmail(ctx context.Context, email string) error {
	err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE email = $1`, email)
	if err != nil {
		logger.Error("SubscriptionRepository:DeleteByEmail:Error:", "error", err)
		return err
	}
	return nil
}
