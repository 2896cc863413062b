package service

import (
	"context"

	"court-watcher/core/errors"
	"court-watcher/core/logger"
	"court-watcher/modules/openings/dto"
	"court-watcher/modules/openings/repository"
)

type OpeningsService interface {
	List(ctx context.Context) ([]dto.OpeningResponse, *errors.AppError)
}

type openingsService struct {
	repo *repository.OpeningRepository
}

func NewOpeningsService(repo *repository.OpeningRepository) OpeningsService {
	return &openingsService{repo: repo}
}

// List returns the current opening baseline.
func (s *openingsService) List(ctx context.Context) ([]dto.OpeningResponse, *errors.AppError) {
	openings, err := s.repo.GetAll(ctx)
	if err != nil {
		logger.Error("OpeningsService:List:GetAll:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrStorageFailure, "failed to load openings", err)
	}

	responses := make([]dto.OpeningResponse, 0, len(openings))
	for _, o := range openings {
		responses = append(responses, dto.OpeningResponse{
			Court:      o.Court,
			Datetime:   o.Datetime,
			Weekday:    o.Weekday,
			HourLength: o.HourLength,
			StartHour:  o.StartHour,
			EndHour:    o.EndHour,
			URLs:       o.URLs,
		})
	}
	return responses, nil
}
