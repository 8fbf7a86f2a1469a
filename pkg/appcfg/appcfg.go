package appcfg

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Status modes for the ephemeral rate line.
const (
	StatusAuto   = "auto"
	StatusAlways = "always"
	StatusNever  = "never"
)

type Config struct {
	Language             string        `yaml:"language"`  // "en" | "ru"
	LogLevel             string        `yaml:"log_level"` // "debug"|"info"|"warn"|"error"
	LogFile              string        `yaml:"log_file"`
	HideSecretsInConsole bool          `yaml:"hide_secrets_in_console"`
	Status               string        `yaml:"status"` // auto|always|never
	Color                bool          `yaml:"color"`
	ReportInterval       time.Duration `yaml:"report_interval"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app config %q: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode app yaml %q: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("app config %q: %w", path, err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Status == "" {
		c.Status = StatusAuto
	}
	if c.ReportInterval == 0 {
		c.ReportInterval = time.Second
	}
}

func (c *Config) Validate() error {
	switch c.Status {
	case StatusAuto, StatusAlways, StatusNever:
	default:
		return errors.New("status must be one of: auto, always, never")
	}
	if c.ReportInterval < 0 {
		return errors.New("report_interval must be positive")
	}
	return nil
}
