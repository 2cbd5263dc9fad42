package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/metrics"
	"github.com/civicdataworks/lane-swim-tracker/pacing"
	"github.com/civicdataworks/lane-swim-tracker/upstream"
)

// ErrNoData signals that a location/week slot has no schedule document: a
// 404 from upstream, or a body that is all preamble. Not a failure.
var ErrNoData = errors.New("no schedule data for this location/week")

// DecodeError is a weekly payload that decoded to text but did not parse as
// JSON. The slot is skipped; the run continues.
type DecodeError struct {
	LocationID int64
	Week       int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode week %d for location %d: %v", e.Week, e.LocationID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ClientOptions configures the weekly schedule fetcher.
type ClientOptions struct {
	// URLTemplate must contain two integer verbs: location id, week index.
	URLTemplate string
	Attempts    int
	Backoff     time.Duration
	Timeout     time.Duration
}

// Client fetches weekly schedule documents, one location and week at a
// time. Every outbound request passes through the pacing gate.
type Client struct {
	httpClient  *http.Client
	urlTemplate string
	attempts    int
	backoff     time.Duration
	gate        *pacing.Gate
	logger      zerolog.Logger
}

// NewClient creates a weekly schedule fetcher.
func NewClient(opts ClientOptions, gate *pacing.Gate, logger zerolog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		urlTemplate: opts.URLTemplate,
		attempts:    opts.Attempts,
		backoff:     opts.Backoff,
		gate:        gate,
		logger:      logger.With().Str("component", "schedule").Logger(),
	}
}

// FetchWeek retrieves and decodes the schedule document for one location
// and week index (1 = current week, 2 = next week). It returns ErrNoData
// for absent slots, a *DecodeError for malformed payloads, and a
// *upstream.TransportError once retries are exhausted.
func (c *Client) FetchWeek(ctx context.Context, locationID int64, week int) (*WeeklyDocument, error) {
	if err := c.gate.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf(c.urlTemplate, locationID, week)
	body, status, err := upstream.Get(ctx, c.httpClient, url, c.attempts, c.backoff, c.logger)
	if err != nil {
		metrics.IncUpstreamRequest("schedule", "error")
		return nil, err
	}
	if status == http.StatusNotFound {
		metrics.IncUpstreamRequest("schedule", "not_found")
		c.logger.Debug().Int64("location_id", locationID).Int("week", week).Msg("no schedule for week")
		return nil, ErrNoData
	}

	decoded := DecodeUTF16(body)
	if decoded.Lossy() {
		metrics.IncLossyDecode()
		c.logger.Warn().
			Int64("location_id", locationID).
			Int("week", week).
			Int("replacements", decoded.Replacements).
			Msg("lossy UTF-16 decode")
	}

	cleaned := StripPreamble(decoded.Text)
	if cleaned == "" {
		metrics.IncUpstreamRequest("schedule", "empty")
		c.logger.Debug().Int64("location_id", locationID).Int("week", week).Msg("empty schedule payload")
		return nil, ErrNoData
	}

	var doc WeeklyDocument
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		metrics.IncUpstreamRequest("schedule", "malformed")
		return nil, &DecodeError{LocationID: locationID, Week: week, Err: err}
	}
	metrics.IncUpstreamRequest("schedule", "ok")
	return &doc, nil
}
