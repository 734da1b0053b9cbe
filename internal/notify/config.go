package notify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML tuning file for the digest sweep.
type FileConfig struct {
	Digest struct {
		Subject      string `yaml:"subject"`
		WindowDays   int    `yaml:"window_days"`
		ScopeToOwner *bool  `yaml:"scope_to_owner"`
	} `yaml:"digest"`
}

// LoadConfig reads a YAML file and applies it over the given options.
func LoadConfig(path string, opts Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read notify config: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return opts, fmt.Errorf("parse notify config: %w", err)
	}

	if cfg.Digest.Subject != "" {
		opts.Subject = cfg.Digest.Subject
	}
	if cfg.Digest.WindowDays > 0 {
		opts.WindowDays = cfg.Digest.WindowDays
	}
	if cfg.Digest.ScopeToOwner != nil {
		opts.ScopeToOwner = *cfg.Digest.ScopeToOwner
	}
	return opts, nil
}
