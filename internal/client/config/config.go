package config

import "time"

// Config holds runtime settings for the Course Copilot CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - DatabasePath: path of the local sqlite cache file.
//   - DropFolder: folder watched for files to stage onto the upload queue.
//   - OnlineCheckInterval: how often the client probes server reachability.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	DropFolder          string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "copilot.db"
	c.DropFolder = ""
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
