package service

import (
	"context"
	"regexp"
	"time"

	"court-watcher/core/errors"
	"court-watcher/core/logger"
	"court-watcher/modules/subscription/dto"
	"court-watcher/modules/subscription/entity"
	"court-watcher/modules/subscription/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SubscriptionService interface {
	Subscribe(ctx context.Context, req *dto.SubscriptionRequest) *errors.AppError
	Unsubscribe(ctx context.Context, token string) (*dto.UnsubscribeResponse, *errors.AppError)
}

type subscriptionService struct {
	repo  *repository.SubscriptionRepository
	codec *TokenCodec
}

func NewSubscriptionService(repo *repository.SubscriptionRepository, codec *TokenCodec) SubscriptionService {
	return &subscriptionService{
		repo:  repo,
		codec: codec,
	}
}

// Subscribe replaces every filter stored for the request's email.
func (s *subscriptionService) Subscribe(ctx context.Context, req *dto.SubscriptionRequest) *errors.AppError {
	if appErr := validateRequest(req); appErr != nil {
		return appErr
	}

	now := time.Now()
	subscriptions := make([]entity.Subscription, 0, len(req.Filters))
	for _, filter := range req.Filters {
		weekdays := make(pq.Int64Array, 0, len(filter.Weekdays))
		for _, d := range filter.Weekdays {
			weekdays = append(weekdays, int64(d))
		}
		subscriptions = append(subscriptions, entity.Subscription{
			ID:           uuid.New(),
			Email:        req.Email,
			Weekdays:     weekdays,
			MinStartHour: filter.MinStartHour,
			MaxEndHour:   filter.MaxEndHour,
			HourLength:   filter.HourLength,
			CreatedAt:    now,
		})
	}

	if err := s.repo.ReplaceForEmail(ctx, req.Email, subscriptions); err != nil {
		logger.Error("SubscriptionService:Subscribe:ReplaceForEmail:Error", "email", req.Email, "error", err)
		return errors.NewAppError(errors.ErrStorageFailure, "failed to save subscription", err)
	}

	logger.Info("SubscriptionService:Subscribe:Success", "email", req.Email, "filters", len(subscriptions))
	return nil
}

// Unsubscribe decrypts the token and removes every filter for the email.
func (s *subscriptionService) Unsubscribe(ctx context.Context, token string) (*dto.UnsubscribeResponse, *errors.AppError) {
	email, err := s.codec.Decrypt(token)
	if err != nil {
		logger.Warn("SubscriptionService:Unsubscribe:InvalidToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid unsubscribe token", err)
	}

	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		logger.Error("SubscriptionService:Unsubscribe:DeleteByEmail:Error", "email", email, "error", err)
		return nil, errors.NewAppError(errors.ErrStorageFailure, "failed to remove subscription", err)
	}

	logger.Info("SubscriptionService:Unsubscribe:Success", "email", email)
	return &dto.UnsubscribeResponse{Email: email}, nil
}

func validateRequest(req *dto.SubscriptionRequest) *errors.AppError {
	if req.Email == "" || !emailPattern.MatchString(req.Email) {
		return errors.NewAppError(errors.ErrInvalidInput, "invalid email format", nil)
	}
	if len(req.Filters) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "at least one filter is required", nil)
	}

	for _, filter := range req.Filters {
		if len(filter.Weekdays) == 0 {
			return errors.NewAppError(errors.ErrInvalidInput, "weekdays must not be empty", nil)
		}
		for _, d := range filter.Weekdays {
			if d < 1 || d > 7 {
				return errors.NewAppError(errors.ErrInvalidInput, "weekdays must be between 1 and 7", nil)
			}
		}
		if filter.HourLength < 1 || filter.HourLength > 3 {
			return errors.NewAppError(errors.ErrInvalidInput, "length must be 1, 2 or 3 hours", nil)
		}
		if filter.MinStartHour < 0 || filter.MinStartHour >= 24 {
			return errors.NewAppError(errors.ErrInvalidInput, "min_start_hour must be within the day", nil)
		}
		if filter.MaxEndHour <= 0 || filter.MaxEndHour > 24 {
			return errors.NewAppError(errors.ErrInvalidInput, "max_end_hour must be within the day", nil)
		}
		if filter.MaxEndHour <= filter.MinStartHour {
			return errors.NewAppError(errors.ErrInvalidInput, "max_end_hour must be after min_start_hour", nil)
		}
	}
	return nil
}
