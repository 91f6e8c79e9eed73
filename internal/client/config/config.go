// Package config holds runtime settings for the counter terminal client.
package config

import (
	"flag"
	"os"
	"path/filepath"
)

// Config holds runtime settings for the counter CLI.
//
// Fields:
//   - ServerURL: base URL of the counter backend.
//   - StatePath: path of the JSON file holding the optimistic local state
//     (the browser-localStorage analogue).
type Config struct {
	ServerURL string
	StatePath string
}

// LoadDefaults populates c with sensible defaults.
// The state file lives under the user's home directory when resolvable.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.StatePath = "counter_state.json"
	if home, err := os.UserHomeDir(); err == nil {
		c.StatePath = filepath.Join(home, ".counter", "state.json")
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("counter-client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "base URL of the counter backend")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "path of the local state file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}
