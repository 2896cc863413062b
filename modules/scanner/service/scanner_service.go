package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"court-watcher/core/cache"
	"court-watcher/core/config"
	"court-watcher/core/constants"
	"court-watcher/core/errors"
	"court-watcher/core/logger"
	"court-watcher/core/utils"
	notificationservice "court-watcher/modules/notification/service"
	openingsentity "court-watcher/modules/openings/entity"
	openingsservice "court-watcher/modules/openings/service"
	"court-watcher/modules/scanner/dto"
	subscriptionentity "court-watcher/modules/subscription/entity"

	"github.com/hibiken/asynq"
)

// OpeningStore is the slice of the openings repository the scanner uses.
type OpeningStore interface {
	GetAll(ctx context.Context) ([]openingsentity.Opening, error)
	ReplaceAll(ctx context.Context, openings []openingsentity.Opening) error
}

// SubscriptionStore loads the subscription filters to notify against.
type SubscriptionStore interface {
	GetAll(ctx context.Context) ([]subscriptionentity.Subscription, error)
}

type ScannerService interface {
	// RunScan executes one full availability scan: fetch, parse, aggregate,
	// diff against the baseline, notify subscribers and swap the baseline.
	RunScan(ctx context.Context) (*dto.ScanStatus, *errors.AppError)
	// EnqueueScan schedules an immediate scan through the task queue.
	EnqueueScan(ctx context.Context) *errors.AppError
	// Status returns the most recent scan summary.
	Status(ctx context.Context) (*dto.ScanStatus, *errors.AppError)
	// HandleScanTask adapts RunScan to the task queue.
	HandleScanTask(ctx context.Context, task *asynq.Task) error
}

type scannerService struct {
	fetcher          *Fetcher
	openingRepo      OpeningStore
	subscriptionRepo SubscriptionStore
	notifier         notificationservice.NotificationService
	urlBuilder       *openingsservice.URLBuilder
	cache            cache.Cache
	client           *asynq.Client

	// running guards against overlapping runs inside this process; the redis
	// lock covers restarts racing a still-live TTL.
	running atomic.Bool
}

func NewScannerService(
	fetcher *Fetcher,
	openingRepo OpeningStore,
	subscriptionRepo SubscriptionStore,
	notifier notificationservice.NotificationService,
	urlBuilder *openingsservice.URLBuilder,
	c cache.Cache,
	client *asynq.Client,
) ScannerService {
	return &scannerService{
		fetcher:          fetcher,
		openingRepo:      openingRepo,
		subscriptionRepo: subscriptionRepo,
		notifier:         notifier,
		urlBuilder:       urlBuilder,
		cache:            c,
		client:           client,
	}
}

func (s *scannerService) RunScan(ctx context.Context) (*dto.ScanStatus, *errors.AppError) {
	if !s.running.CompareAndSwap(false, true) {
		logger.Warn("ScannerService:RunScan:AlreadyRunning")
		return nil, errors.NewAppError(errors.ErrScanInProgress, "a scan is already running", nil)
	}
	defer s.running.Store(false)

	runID := utils.GenerateRunID()
	status := &dto.ScanStatus{
		RunID:     runID,
		StartedAt: time.Now(),
	}

	acquired, err := s.cache.AcquireLock(ctx, constants.ScanLockKey, runID, constants.ScanLockTTL)
	if err != nil {
		// The in-process guard still serializes runs; losing the cache only
		// loses cross-process exclusion.
		logger.Warn("ScannerService:RunScan:LockUnavailable", "run_id", runID, "error", err)
	} else if !acquired {
		logger.Warn("ScannerService:RunScan:LockHeld", "run_id", runID)
		return nil, errors.NewAppError(errors.ErrScanInProgress, "a scan is already running", nil)
	} else {
		defer func() {
			if err := s.cache.ReleaseLock(context.Background(), constants.ScanLockKey); err != nil {
				logger.Warn("ScannerService:RunScan:ReleaseLock:Error", "run_id", runID, "error", err)
			}
		}()
	}

	logger.Info("ScannerService:RunScan:Start", "run_id", runID)
	result, appErr := s.scan(ctx, runID, status)
	if appErr != nil {
		status.Status = dto.ScanStatusFailed
		status.Error = appErr.Message
		status.FinishedAt = time.Now()
		s.saveStatus(status)
		return nil, appErr
	}

	result.Status = dto.ScanStatusOK
	result.FinishedAt = time.Now()
	s.saveStatus(result)
	logger.Info("ScannerService:RunScan:Done",
		"run_id", runID,
		"slots", result.Slots,
		"openings", result.Openings,
		"new_openings", result.NewOpenings,
		"emails_sent", result.EmailsSent,
		"duration_ms", result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
	)
	return result, nil
}

func (s *scannerService) scan(ctx context.Context, runID string, status *dto.ScanStatus) (*dto.ScanStatus, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrConfiguration, "configuration not initialized", nil)
	}

	horizonEnd, err := time.ParseInLocation("2006-01-02", cfg.Scan.HorizonEndDate, time.Local)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrConfiguration, "invalid scan horizon end date", err)
	}

	now := time.Now()
	slots := s.fetchAllSlots(ctx, now, horizonEnd)
	status.Slots = len(slots)
	if ctx.Err() != nil {
		// A cancelled run must leave the baseline untouched.
		return nil, errors.NewAppError(errors.ErrFetchFailure, "scan cancelled", ctx.Err())
	}

	current := openingsservice.Aggregate(slots, now, horizonEnd)
	current = s.attachBookingURLs(current)
	status.Openings = len(current)

	baseline, err := s.openingRepo.GetAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStorageFailure, "failed to load opening baseline", err)
	}

	fresh := openingsservice.NewOpenings(current, baseline)
	status.NewOpenings = len(fresh)

	if len(fresh) > 0 {
		logger.Info("ScannerService:Scan:NewOpenings", "run_id", runID, "count", len(fresh))
		subscriptions, err := s.subscriptionRepo.GetAll(ctx)
		if err != nil {
			// Subscribers miss one notification; the diff stays correct
			// because the baseline swap below still runs.
			logger.Error("ScannerService:Scan:LoadSubscriptions:Error", "run_id", runID, "error", err)
		} else {
			status.EmailsSent = s.notifier.NotifyNewOpenings(ctx, runID, fresh, subscriptions)
		}
	}

	if ctx.Err() != nil {
		return nil, errors.NewAppError(errors.ErrStorageFailure, "scan cancelled before baseline swap", ctx.Err())
	}

	if err := s.openingRepo.ReplaceAll(ctx, current); err != nil {
		return nil, errors.NewAppError(errors.ErrStorageFailure, "failed to replace opening baseline", err)
	}

	return status, nil
}

// fetchAllSlots retrieves and parses every (date, session group) document in
// the scan horizon. The fetcher's semaphore bounds network concurrency.
func (s *scannerService) fetchAllSlots(ctx context.Context, start time.Time, horizonEnd time.Time) []openingsentity.HalfHourSlot {
	var (
		mu    sync.Mutex
		slots []openingsentity.HalfHourSlot
		wg    sync.WaitGroup
	)

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for ; day.Before(horizonEnd); day = day.AddDate(0, 0, 1) {
		groups := openingsservice.WeekdayFetchSessionGroups
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			groups = openingsservice.WeekendFetchSessionGroups
		}

		for _, sessionTypeID := range groups {
			wg.Add(1)
			go func(date time.Time, sessionTypeID int) {
				defer wg.Done()
				fragment := s.fetcher.FetchSessionHTML(ctx, date, sessionTypeID)
				if fragment == "" {
					return
				}
				parsed := ParseSessionSlots(fragment, date)
				mu.Lock()
				slots = append(slots, parsed...)
				mu.Unlock()
			}(day, sessionTypeID)
		}
	}

	wg.Wait()
	return slots
}

// attachBookingURLs resolves deep links for each opening. Openings whose
// segments have no session id are configuration errors and are dropped so no
// broken link ever reaches a subscriber.
func (s *scannerService) attachBookingURLs(openings []openingsentity.Opening) []openingsentity.Opening {
	kept := openings[:0]
	for _, o := range openings {
		urls, appErr := s.urlBuilder.BookingURLs(o)
		if appErr != nil {
			logger.Error("ScannerService:AttachBookingURLs:Error", "court", o.Court, "start", o.Datetime, "error", appErr)
			continue
		}
		o.URLs = urls
		kept = append(kept, o)
	}
	return kept
}

func (s *scannerService) saveStatus(status *dto.ScanStatus) {
	payload, err := json.Marshal(status)
	if err != nil {
		logger.Error("ScannerService:SaveStatus:Marshal:Error", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, constants.ScanStatusKey, string(payload), constants.ScanStatusTTL); err != nil {
		logger.Warn("ScannerService:SaveStatus:Set:Error", "error", err)
	}
}

func (s *scannerService) EnqueueScan(ctx context.Context) *errors.AppError {
	task := asynq.NewTask(constants.ScanTaskTypeName, nil)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(constants.ScanQueueName)); err != nil {
		logger.Error("ScannerService:EnqueueScan:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to enqueue scan", err)
	}
	return nil
}

func (s *scannerService) Status(ctx context.Context) (*dto.ScanStatus, *errors.AppError) {
	payload, err := s.cache.Get(ctx, constants.ScanStatusKey)
	if err != nil {
		logger.Error("ScannerService:Status:Get:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load scan status", err)
	}
	if payload == "" {
		return nil, errors.NewAppError(errors.ErrNotFound, "no scan has completed yet", nil)
	}

	var status dto.ScanStatus
	if err := json.Unmarshal([]byte(payload), &status); err != nil {
		logger.Error("ScannerService:Status:Unmarshal:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "corrupt scan status", err)
	}
	return &status, nil
}

// HandleScanTask runs one scheduled scan. Skips and failures are logged, not
// returned: the next interval tick retries the full horizon anyway, so queue
// retries would only pile up behind the serialization guard.
func (s *scannerService) HandleScanTask(ctx context.Context, task *asynq.Task) error {
	if _, appErr := s.RunScan(ctx); appErr != nil && appErr.Code != errors.ErrScanInProgress {
		logger.Error("ScannerService:HandleScanTask:Error", "error", appErr)
	}
	return nil
}
