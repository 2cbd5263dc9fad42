package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. An empty
// path falls back to config.yml in the working directory.
func LoadAppConfig(path string) error {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./configs/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.DirectoryURL == "" {
		cfg.Upstream.DirectoryURL = "https://services3.arcgis.com/b9WvedVPoizGfvfD/arcgis/rest/services/V_Swim_Locations_2022/FeatureServer/0/query?f=json&where=Show_On_Map%20=%20%27Yes%27&returnGeometry=true&spatialRel=esriSpatialRelIntersects&outFields=*&outSR=102100&resultOffset=0&resultRecordCount=5000"
	}
	if cfg.Upstream.ScheduleURLTemplate == "" {
		cfg.Upstream.ScheduleURLTemplate = "https://www.toronto.ca/data/parks/live/locations/%d/swim/week%d.json"
	}
	if cfg.Upstream.RetryAttempts == 0 {
		cfg.Upstream.RetryAttempts = 3
	}
	if cfg.Upstream.RetryBackoffMS == 0 {
		cfg.Upstream.RetryBackoffMS = 1000
	}
	if cfg.Upstream.PolitenessMinMS == 0 {
		cfg.Upstream.PolitenessMinMS = 250
	}
	if cfg.Upstream.PolitenessMaxMS == 0 {
		cfg.Upstream.PolitenessMaxMS = 500
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = 15000
	}
	if cfg.Cache.SnapshotPath == "" {
		cfg.Cache.SnapshotPath = "data/snapshot.json"
	}
	if cfg.Cache.CandidatesPath == "" {
		cfg.Cache.CandidatesPath = "data/candidates.json"
	}
	if cfg.Refresh.IntervalHours == 0 {
		cfg.Refresh.IntervalHours = 24
	}
	if cfg.Refresh.CycleBudgetMinutes == 0 {
		cfg.Refresh.CycleBudgetMinutes = 30
	}
	if cfg.Monitoring.PrometheusPort == 0 {
		cfg.Monitoring.PrometheusPort = 9090
	}
}
