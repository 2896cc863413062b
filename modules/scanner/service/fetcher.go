package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"court-watcher/core/config"
	"court-watcher/core/constants"
	"court-watcher/core/logger"
)

// The widget responds with a JSONP callback whose single JSON field holds the
// escaped HTML fragment, terminated by an escaped newline.
var payloadPattern = regexp.MustCompile(`":"(.*)\\n"`)

// Fetcher retrieves raw availability documents from the booking widget.
// At most FetchConcurrency requests are in flight at once across the whole
// run; each resource is attempted up to the retry ceiling and degrades to an
// empty result so one bad resource never aborts a scan.
type Fetcher struct {
	client   *http.Client
	sem      chan struct{}
	retries  int
	widgetID string
	baseURL  string
}

func NewFetcher(scanCfg config.ScanConfig, providerCfg config.ProviderConfig) *Fetcher {
	return NewFetcherWithBaseURL(scanCfg, providerCfg, constants.WidgetBaseURL)
}

// NewFetcherWithBaseURL points the fetcher at an alternate widget endpoint.
// Tests use it to target a local server.
func NewFetcherWithBaseURL(scanCfg config.ScanConfig, providerCfg config.ProviderConfig, baseURL string) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: constants.FetchTimeout},
		sem:      make(chan struct{}, scanCfg.FetchConcurrency),
		retries:  scanCfg.FetchRetries,
		widgetID: providerCfg.WidgetID,
		baseURL:  baseURL,
	}
}

// resultsURL builds the widget query for one (date, session group) pair. The
// callback parameters mirror the widget's own embed requests.
func (f *Fetcher) resultsURL(date time.Time, sessionTypeID int) string {
	day := date.Format("2006-01-02")
	return fmt.Sprintf(
		"%s/%s/results.json?callback=%%3F&callback=jQuery18108096050440047702_1638908795555&utf8=%%E2%%9C%%93&options%%5Bsession_type_ids%%5D=%d&options%%5Bstaff_ids%%5D%%5B%%5D=&options%%5Bstart_date%%5D=%s&options%%5Bend_date%%5D=%s",
		f.baseURL, f.widgetID, sessionTypeID, day, day)
}

// FetchSessionHTML returns the unescaped HTML fragment for one
// (date, session group) pair, or "" once the retry ceiling is exhausted.
// Callers treat "" as "no data for this slice".
func (f *Fetcher) FetchSessionHTML(ctx context.Context, date time.Time, sessionTypeID int) string {
	url := f.resultsURL(date, sessionTypeID)

	for attempt := 1; attempt <= f.retries; attempt++ {
		fragment, err := f.fetchOnce(ctx, url)
		if err == nil {
			return fragment
		}
		if ctx.Err() != nil {
			logger.Warn("Fetcher:FetchSessionHTML:Cancelled", "url", url)
			return ""
		}
		if attempt < f.retries {
			logger.Warn("Fetcher:FetchSessionHTML:Retrying", "url", url, "attempt", attempt, "error", err)
		}
	}

	logger.Error("Fetcher:FetchSessionHTML:GiveUp", "url", url, "attempts", f.retries)
	return ""
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	select {
	case f.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-f.sem }()

	reqCtx, cancel := context.WithTimeout(ctx, constants.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return extractPayload(string(body))
}

// extractPayload locates the escaped JSON string inside the JSONP body and
// unescapes it (including unicode escape sequences) into plain HTML.
func extractPayload(body string) (string, error) {
	match := payloadPattern.FindStringSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("no payload segment in response")
	}

	var fragment string
	if err := json.Unmarshal([]byte(`"`+match[1]+`"`), &fragment); err != nil {
		return "", fmt.Errorf("malformed payload segment: %w", err)
	}
	return fragment, nil
}
