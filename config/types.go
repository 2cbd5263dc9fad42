package config

import "time"

// ServerConfig contains the query API server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// UpstreamConfig contains the open-data endpoints and fetch policy.
type UpstreamConfig struct {
	// DirectoryURL returns the full facility directory as a feature
	// collection.
	DirectoryURL string `yaml:"directoryURL" validate:"required,url"`
	// ScheduleURLTemplate expands to a weekly schedule document; it takes
	// the location id and the week index (1 or 2), in that order.
	ScheduleURLTemplate string `yaml:"scheduleURLTemplate" validate:"required"`
	RetryAttempts       int    `yaml:"retryAttempts" validate:"gt=0"`
	RetryBackoffMS      int    `yaml:"retryBackoffMS" validate:"gt=0"`
	// PolitenessMinMS/PolitenessMaxMS bound the mandatory pause between
	// outbound requests. This is a contract with the publisher, not tuning.
	PolitenessMinMS int `yaml:"politenessMinMS" validate:"gte=0"`
	PolitenessMaxMS int `yaml:"politenessMaxMS" validate:"gte=0"`
	TimeoutMS       int `yaml:"timeoutMS" validate:"gt=0"`
}

// CacheConfig contains the on-disk cache locations.
type CacheConfig struct {
	SnapshotPath   string `yaml:"snapshotPath" validate:"required"`
	CandidatesPath string `yaml:"candidatesPath" validate:"required"`
}

// RefreshConfig contains the background refresh cycle settings.
type RefreshConfig struct {
	IntervalHours      int `yaml:"intervalHours" validate:"gt=0"`
	CycleBudgetMinutes int `yaml:"cycleBudgetMinutes" validate:"gt=0"`
}

// MonitoringConfig contains the metrics endpoint settings.
type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheusEnabled"`
	PrometheusPort    int  `yaml:"prometheusPort" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Upstream   UpstreamConfig   `yaml:"upstream"`
	Cache      CacheConfig      `yaml:"cache"`
	Refresh    RefreshConfig    `yaml:"refresh"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// RetryBackoff returns the initial retry backoff as a duration.
func (u UpstreamConfig) RetryBackoff() time.Duration {
	return time.Duration(u.RetryBackoffMS) * time.Millisecond
}

// Timeout returns the per-request timeout as a duration.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutMS) * time.Millisecond
}

// PolitenessMin returns the lower bound of the inter-request pause.
func (u UpstreamConfig) PolitenessMin() time.Duration {
	return time.Duration(u.PolitenessMinMS) * time.Millisecond
}

// PolitenessMax returns the upper bound of the inter-request pause.
func (u UpstreamConfig) PolitenessMax() time.Duration {
	return time.Duration(u.PolitenessMaxMS) * time.Millisecond
}

// Interval returns the refresh interval as a duration.
func (r RefreshConfig) Interval() time.Duration {
	return time.Duration(r.IntervalHours) * time.Hour
}

// CycleBudget returns the per-cycle wall-clock budget as a duration.
func (r RefreshConfig) CycleBudget() time.Duration {
	return time.Duration(r.CycleBudgetMinutes) * time.Minute
}
