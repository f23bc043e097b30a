// Package config loads the galaxypdf settings from a YAML file and
// GALAXYPDF_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	yamlv3 "gopkg.in/yaml.v3"

	galaxypdf "github.com/lvillar/galaxypdf"
	"github.com/lvillar/galaxypdf/pageops"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "galaxypdf.yml"

// EnvPrefix prefixes the environment overrides: GALAXYPDF_ADDR -> addr,
// GALAXYPDF_LOG__LEVEL -> log.level.
const EnvPrefix = "GALAXYPDF_"

// Processing selects the merge/split backend.
type Processing string

const (
	ProcessingPDF       Processing = "pdf"
	ProcessingSimulated Processing = "simulated"
)

// Config is the top-level configuration, corresponding to galaxypdf.yml.
type Config struct {
	Addr             string        `yaml:"addr" koanf:"addr"`
	BaseURL          string        `yaml:"base_url" koanf:"base_url"`
	Processing       Processing    `yaml:"processing" koanf:"processing"`
	MaxUploadMB      int64         `yaml:"max_upload_mb" koanf:"max_upload_mb"`
	FeedbackDuration time.Duration `yaml:"feedback_duration" koanf:"feedback_duration"`
	SessionTTL       time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	AllowAllOrigins  bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Log              LogConfig     `yaml:"log" koanf:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:             ":8080",
		BaseURL:          "http://localhost:8080",
		Processing:       ProcessingPDF,
		MaxUploadMB:      64,
		FeedbackDuration: 3 * time.Second,
		SessionTTL:       30 * time.Minute,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	switch c.Processing {
	case ProcessingPDF, ProcessingSimulated:
	default:
		return fmt.Errorf("invalid processing %q: must be one of pdf, simulated", c.Processing)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive")
	}
	if c.FeedbackDuration <= 0 {
		return fmt.Errorf("feedback_duration must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be one of text, json", c.Log.Format)
	}
	return nil
}

// MaxUploadBytes is the request body limit for file uploads.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// NewProcessor returns the merge/split backend selected by Processing.
func (c *Config) NewProcessor() galaxypdf.Processor {
	if c.Processing == ProcessingSimulated {
		return galaxypdf.SimulatedProcessor{}
	}
	return pageops.NewProcessor()
}

// NewLogger builds a logger from the log settings.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	l := logrus.New()
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	l.SetLevel(level)
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
