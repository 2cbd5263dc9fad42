package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/metrics"
)

// TransportError is a network failure or a non-2xx, non-404 response that
// survived the retry policy.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Get fetches url with up to attempts tries, doubling the delay between
// tries starting at backoff. It returns the body and status code on success
// (a 404 returns a nil body with status 404), or the last error once the
// retries are exhausted.
func Get(ctx context.Context, client *http.Client, url string, attempts int, backoff time.Duration, logger zerolog.Logger) ([]byte, int, error) {
	if attempts < 1 {
		attempts = 1
	}
	delay := backoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, status, err := getOnce(ctx, client, url)
		if err == nil {
			return body, status, nil
		}
		lastErr = err
		logger.Warn().
			Int("attempt", attempt).
			Str("url", url).
			Err(err).
			Msg("upstream request failed")
		if attempt == attempts {
			break
		}
		metrics.IncUpstreamRetry()
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, 0, ctx.Err()
		}
		delay *= 2
	}
	return nil, 0, lastErr
}

func getOnce(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &TransportError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, http.StatusNotFound, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{URL: url, Err: err}
	}
	return body, resp.StatusCode, nil
}
