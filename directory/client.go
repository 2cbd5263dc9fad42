package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicdataworks/lane-swim-tracker/metrics"
	"github.com/civicdataworks/lane-swim-tracker/snapshot"
	"github.com/civicdataworks/lane-swim-tracker/upstream"
)

// laneSwimMarker is the exact, case-sensitive phrase a facility's
// activity-type string must contain to qualify.
const laneSwimMarker = "Lane Swim"

type featureCollection struct {
	Features []struct {
		Attributes snapshot.Facility `json:"attributes"`
	} `json:"features"`
}

// ClientOptions configures the directory fetcher.
type ClientOptions struct {
	URL      string
	Attempts int
	Backoff  time.Duration
	Timeout  time.Duration
}

// Client fetches the facility directory.
type Client struct {
	httpClient *http.Client
	url        string
	attempts   int
	backoff    time.Duration
	logger     zerolog.Logger
}

// NewClient creates a directory fetcher.
func NewClient(opts ClientOptions, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		url:        opts.URL,
		attempts:   opts.Attempts,
		backoff:    opts.Backoff,
		logger:     logger.With().Str("component", "directory").Logger(),
	}
}

// FetchCandidates retrieves the full directory and returns the facilities
// whose activity type mentions lane swim. Facilities dropped here never
// have their schedules fetched. Retry exhaustion is fatal to the caller's
// refresh run: with no candidate list there is nothing to do.
func (c *Client) FetchCandidates(ctx context.Context) ([]snapshot.Facility, error) {
	body, status, err := upstream.Get(ctx, c.httpClient, c.url, c.attempts, c.backoff, c.logger)
	if err != nil {
		metrics.IncUpstreamRequest("directory", "error")
		return nil, err
	}
	if status == http.StatusNotFound {
		metrics.IncUpstreamRequest("directory", "error")
		return nil, &upstream.TransportError{URL: c.url, StatusCode: status}
	}

	var fc featureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		metrics.IncUpstreamRequest("directory", "malformed")
		return nil, fmt.Errorf("parse directory response: %w", err)
	}
	metrics.IncUpstreamRequest("directory", "ok")

	candidates := make([]snapshot.Facility, 0, len(fc.Features))
	for _, feat := range fc.Features {
		if !strings.Contains(feat.Attributes.ActivityType, laneSwimMarker) {
			continue
		}
		candidates = append(candidates, feat.Attributes)
	}

	c.logger.Info().
		Int("total", len(fc.Features)).
		Int("candidates", len(candidates)).
		Msg("directory fetched")
	return candidates, nil
}
