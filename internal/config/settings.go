package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/studiowebux/productdesk/internal/types"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file
const (
	EnvBaseURL  = "PRODUCTDESK_BASE_URL"
	EnvTimeout  = "PRODUCTDESK_TIMEOUT"
	EnvLogLevel = "PRODUCTDESK_LOG_LEVEL"
)

// DefaultBaseURL is where the product API is expected when nothing else is configured
const DefaultBaseURL = "http://localhost:8080"

// Settings is the user-editable configuration
type Settings struct {
	BaseURL        string           `yaml:"base_url"`
	Timeout        time.Duration    `yaml:"timeout"`        // 0 keeps the transport default (none)
	FrameInterval  time.Duration    `yaml:"frame_interval"` // redraw cadence of the TUI
	HistoryEnabled bool             `yaml:"history_enabled"`
	FetchOnStart   bool             `yaml:"fetch_on_start"`
	LogLevel       string           `yaml:"log_level"`
	TLS            *types.TLSConfig `yaml:"tls,omitempty"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:        DefaultBaseURL,
		FrameInterval:  100 * time.Millisecond,
		HistoryEnabled: true,
		FetchOnStart:   true,
		LogLevel:       "info",
	}
}

// LoadSettings reads settings from a YAML file, filling unset fields with defaults
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if settings.FrameInterval == 0 {
		settings.FrameInterval = DefaultSettings().FrameInterval
	}
	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}

	return settings, nil
}

// SaveSettings writes settings to a YAML file
func SaveSettings(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from PRODUCTDESK_* environment variables
func (s *Settings) ApplyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		s.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	return nil
}

// Validate checks the settings for values the client cannot work with
func (s *Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", s.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", s.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", s.BaseURL)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if s.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive")
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (use debug, info, warn or error)", s.LogLevel)
	}
	return nil
}

// Load resolves the effective settings: env file, settings file, then environment
func Load(envFile string) (*Settings, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	settings, err := LoadSettings(GetSettingsFilePath())
	if err != nil {
		return nil, err
	}

	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}

	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}
