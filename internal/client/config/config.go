package config

import "time"

// Config holds runtime settings for the lenderctl terminal.
//
// Fields:
//   - APIBaseURL: origin of the LinkLedger records API, e.g. "https://api.linkledger.co.bw".
//   - SessionDBPath: path of the local SQLite file holding the session triad.
//   - DocumentTTL: how long a fetched protected document stays on disk.
//
// Units: DocumentTTL is a time.Duration (e.g., 60*time.Second).
type Config struct {
	APIBaseURL    string
	SessionDBPath string
	DocumentTTL   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.SessionDBPath = "lenderctl.db"
	c.DocumentTTL = 60 * time.Second
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
