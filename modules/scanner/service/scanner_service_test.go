package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"court-watcher/core/cache"
	"court-watcher/core/config"
	"court-watcher/core/errors"
	openingsentity "court-watcher/modules/openings/entity"
	openingsservice "court-watcher/modules/openings/service"
	"court-watcher/modules/scanner/service"
	subscriptionentity "court-watcher/modules/subscription/entity"

	"github.com/stretchr/testify/require"
)

type fakeOpeningStore struct {
	mu           sync.Mutex
	baseline     []openingsentity.Opening
	replaceCalls int
}

func (s *fakeOpeningStore) GetAll(ctx context.Context) ([]openingsentity.Opening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline, nil
}

func (s *fakeOpeningStore) ReplaceAll(ctx context.Context, openings []openingsentity.Opening) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceCalls++
	s.baseline = openings
	return nil
}

func (s *fakeOpeningStore) replaced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceCalls
}

type fakeSubscriptionStore struct{}

func (s *fakeSubscriptionStore) GetAll(ctx context.Context) ([]subscriptionentity.Subscription, error) {
	return nil, nil
}

type fakeNotifier struct{}

func (n *fakeNotifier) NotifyNewOpenings(
	ctx context.Context,
	runID string,
	newOpenings []openingsentity.Opening,
	subscriptions []subscriptionentity.Subscription,
) int {
	return 0
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *fakeCache) AcquireLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, held := c.values[key]; held {
		return false, nil
	}
	c.values[key] = token
	return true, nil
}

func (c *fakeCache) ReleaseLock(ctx context.Context, key string) error {
	return c.Delete(ctx, key)
}

var _ cache.Cache = (*fakeCache)(nil)

// loadScannerConfig initializes the config singleton with a one-day horizon
// so a scan issues only a handful of widget requests.
func loadScannerConfig(t *testing.T) {
	t.Helper()
	t.Setenv("END_DATE", time.Now().AddDate(0, 0, 1).Format("2006-01-02"))
	t.Setenv("BASE_URL", "http://localhost:7070")
	_, err := config.Load()
	require.NoError(t, err)
}

func newTestScanner(t *testing.T, handler http.HandlerFunc, store *fakeOpeningStore) service.ScannerService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fetcher := service.NewFetcherWithBaseURL(
		config.ScanConfig{FetchConcurrency: 2, FetchRetries: 1},
		config.ProviderConfig{WidgetID: "8f25324d818"},
		srv.URL,
	)
	return service.NewScannerService(
		fetcher,
		store,
		&fakeSubscriptionStore{},
		&fakeNotifier{},
		openingsservice.NewURLBuilder("19060"),
		newFakeCache(),
		nil,
	)
}

func TestRunScan_ConcurrentRunIsRejected(t *testing.T) {
	loadScannerConfig(t)

	var entered sync.Once
	enteredCh := make(chan struct{})
	release := make(chan struct{})
	store := &fakeOpeningStore{}

	svc := newTestScanner(t, func(w http.ResponseWriter, r *http.Request) {
		entered.Do(func() { close(enteredCh) })
		<-release
		_, _ = w.Write([]byte(widgetBody))
	}, store)

	done := make(chan *errors.AppError, 1)
	go func() {
		_, appErr := svc.RunScan(context.Background())
		done <- appErr
	}()

	// Wait for the first run to be mid-fetch, then trigger a second one.
	<-enteredCh
	_, appErr := svc.RunScan(context.Background())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrScanInProgress, appErr.Code)

	close(release)
	require.Nil(t, <-done)
	require.Equal(t, 1, store.replaced())
}

func TestRunScan_SequentialRunsBothComplete(t *testing.T) {
	loadScannerConfig(t)

	store := &fakeOpeningStore{}
	svc := newTestScanner(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(widgetBody))
	}, store)

	_, appErr := svc.RunScan(context.Background())
	require.Nil(t, appErr)
	_, appErr = svc.RunScan(context.Background())
	require.Nil(t, appErr)
	require.Equal(t, 2, store.replaced())
}

func TestRunScan_CancelledRunNeverSwapsBaseline(t *testing.T) {
	loadScannerConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	store := &fakeOpeningStore{}
	svc := newTestScanner(t, func(w http.ResponseWriter, r *http.Request) {
		// Cancel mid-fetch; the run must fail without touching the baseline.
		cancel()
		w.WriteHeader(http.StatusInternalServerError)
	}, store)

	_, appErr := svc.RunScan(ctx)
	require.NotNil(t, appErr)
	require.Equal(t, 0, store.replaced())
}
