package repository

import (
	"context"

	"court-watcher/core/database"
	"court-watcher/core/logger"
	"court-watcher/modules/openings/entity"
)

type OpeningRepository struct {
	db database.IDatabase
}

func NewOpeningRepository(db database.IDatabase) *OpeningRepository {
	return &OpeningRepository{db: db}
}

// GetAll returns the persisted opening baseline from the previous scan.
func (r *OpeningRepository) GetAll(ctx context.Context) ([]entity.Opening, error) {
	query := `
		SELECT court, datetime, weekday, hour_length, start_hour, end_hour, urls
		FROM openings
		ORDER BY datetime, court, hour_length
	`
	var openings []entity.Opening
	err := r.db.SelectContext(ctx, &openings, query)
	if err != nil {
		logger.Error("OpeningRepository:GetAll:Error:", "error", err)
		return nil, err
	}
	return openings, nil
}

// ReplaceAll swaps the baseline for the given opening set in one transaction.
// On any failure the previous baseline stays untouched.
func (r *OpeningRepository) ReplaceAll(ctx context.Context, openings []entity.Opening) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("OpeningRepository:ReplaceAll:Begin:Error:", "error", err)
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `TRUNCATE openings`); err != nil {
		logger.Error("OpeningRepository:ReplaceAll:Truncate:Error:", "error", err)
		return err
	}

	if len(openings) > 0 {
		insert := `
			INSERT INTO openings (court, datetime, weekday, hour_length, start_hour, end_hour, urls)
			VALUES (:court, :datetime, :weekday, :hour_length, :start_hour, :end_hour, :urls)
		`
		if _, err := tx.NamedExecContext(ctx, insert, openings); err != nil {
			logger.Error("OpeningRepository:ReplaceAll:Insert:Error:", "error", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("OpeningRepository:ReplaceAll:Commit:Error:", "error", err)
		return err
	}
	return nil
}
