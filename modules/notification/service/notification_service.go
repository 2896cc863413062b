package service

import (
	"context"
	"fmt"
	"time"

	"court-watcher/core/config"
	"court-watcher/core/constants"
	"court-watcher/core/logger"
	"court-watcher/core/utils"
	"court-watcher/modules/notification/entity"
	"court-watcher/modules/notification/repository"
	openingsentity "court-watcher/modules/openings/entity"
	subscriptionentity "court-watcher/modules/subscription/entity"
	subscriptionservice "court-watcher/modules/subscription/service"

	"github.com/google/uuid"
)

// Sender delivers one rendered email. Swapped out in tests.
type Sender func(cfg config.SMTPConfig, to string, subject string, bodyHTML string) error

type NotificationService interface {
	// NotifyNewOpenings matches the run's new openings against all
	// subscriptions and emails each subscriber with at least one match.
	// Returns the number of emails delivered. Per-recipient failures are
	// logged and skipped.
	NotifyNewOpenings(
		ctx context.Context,
		runID string,
		newOpenings []openingsentity.Opening,
		subscriptions []subscriptionentity.Subscription,
	) int
}

type notificationService struct {
	repo   *repository.NotificationRepository
	codec  *subscriptionservice.TokenCodec
	sender Sender
}

func NewNotificationService(repo *repository.NotificationRepository, codec *subscriptionservice.TokenCodec) NotificationService {
	return &notificationService{
		repo:   repo,
		codec:  codec,
		sender: utils.SendHTMLEmail,
	}
}

// NewNotificationServiceWithSender is the injectable constructor used by tests.
func NewNotificationServiceWithSender(repo *repository.NotificationRepository, codec *subscriptionservice.TokenCodec, sender Sender) NotificationService {
	return &notificationService{
		repo:   repo,
		codec:  codec,
		sender: sender,
	}
}

func (s *notificationService) NotifyNewOpenings(
	ctx context.Context,
	runID string,
	newOpenings []openingsentity.Opening,
	subscriptions []subscriptionentity.Subscription,
) int {
	if len(newOpenings) == 0 || len(subscriptions) == 0 {
		return 0
	}

	cfg, ok := config.GetSafe()
	if !ok {
		logger.Error("NotificationService:NotifyNewOpenings:ConfigNotInitialized")
		return 0
	}

	matched := MatchOpenings(newOpenings, subscriptions, time.Now())
	if len(matched) == 0 {
		return 0
	}

	sent := 0
	for email, openings := range matched {
		token, err := s.codec.Encrypt(email)
		if err != nil {
			logger.Error("NotificationService:NotifyNewOpenings:Encrypt:Error", "email", email, "error", err)
			continue
		}
		unsubscribeURL := fmt.Sprintf("%s/unsubscribe/%s", cfg.Server.BaseURL, token)
		body := renderEmailHTML(openings, unsubscribeURL)

		if err := s.sender(cfg.SMTP, email, constants.NotificationSubject, body); err != nil {
			// One failed recipient must not block the rest.
			logger.Error("NotificationService:NotifyNewOpenings:Send:Error", "email", email, "error", err)
			continue
		}
		sent++

		record := &entity.Notification{
			ID:           uuid.New(),
			Email:        email,
			RunID:        runID,
			OpeningCount: len(openings),
			SentAt:       time.Now(),
		}
		if err := s.repo.Create(ctx, record); err != nil {
			logger.Error("NotificationService:NotifyNewOpenings:Record:Error", "email", email, "error", err)
		}
	}

	logger.Info("NotificationService:NotifyNewOpenings:Done", "run_id", runID, "recipients", len(matched), "sent", sent)
	return sent
}
