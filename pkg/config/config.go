// Package config resolves scan settings from, in increasing precedence:
// built-in defaults, the optional YAML config file, environment
// variables, then command-line flags (applied by the cmd layer).
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProfile = "SANDBOXSCORE_PROFILE"
	EnvFormat  = "SANDBOXSCORE_FORMAT"
	EnvFailOn  = "SANDBOXSCORE_FAIL_ON"
)

// Config carries the settings the core does not decide for itself.
type Config struct {
	Profile string `yaml:"profile"`
	Format  string `yaml:"format"`
	FailOn  string `yaml:"fail_on"`
}

// Path returns the config file location, ~/.sandboxscore/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sandboxscore", "config.yaml"), nil
}

// Load resolves the effective configuration. A missing config file or
// .env is not an error; a malformed config file is.
func Load() (*Config, error) {
	// .env in the working directory, for CI jobs that ship one.
	_ = godotenv.Load()

	cfg := &Config{
		Profile: "personal",
		Format:  "text",
	}

	path, err := Path()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	if v := os.Getenv(EnvProfile); v != "" {
		cfg.Profile = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvFailOn); v != "" {
		cfg.FailOn = v
	}
	return cfg, nil
}

// Save writes cfg to the config file, creating the directory if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
