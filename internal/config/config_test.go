package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitializeAt_CreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "productdesk")

	if err := InitializeAt(dir); err != nil {
		t.Fatalf("InitializeAt: %v", err)
	}

	if _, err := os.Stat(SettingsFile); err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
	if filepath.Dir(DatabasePath) != dir {
		t.Errorf("DatabasePath = %s, want inside %s", DatabasePath, dir)
	}
	if filepath.Base(KeybindsFile) != "keybinds.json" {
		t.Errorf("KeybindsFile = %s", KeybindsFile)
	}

	settings, err := LoadSettings(SettingsFile)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", settings.BaseURL, DefaultBaseURL)
	}
	if !settings.HistoryEnabled || !settings.FetchOnStart {
		t.Error("expected history and fetch_on_start enabled by default")
	}
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.FrameInterval != 100*time.Millisecond {
		t.Errorf("FrameInterval = %v", settings.FrameInterval)
	}
}

func TestLoadSettings_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `base_url: https://api.example.com
timeout: 5s
history_enabled: false
tls:
  insecure_skip_verify: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	if settings.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", settings.BaseURL)
	}
	if settings.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", settings.Timeout)
	}
	if settings.HistoryEnabled {
		t.Error("HistoryEnabled should be false")
	}
	if !settings.FetchOnStart {
		t.Error("FetchOnStart should keep its default")
	}
	if settings.TLS == nil || !settings.TLS.InsecureSkipVerify {
		t.Error("expected tls.insecure_skip_verify to be parsed")
	}
	if settings.FrameInterval != 100*time.Millisecond {
		t.Errorf("FrameInterval = %v, want default", settings.FrameInterval)
	}
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSettings_ApplyEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://10.0.0.5:9000")
	t.Setenv(EnvTimeout, "250ms")
	t.Setenv(EnvLogLevel, "debug")

	settings := DefaultSettings()
	if err := settings.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if settings.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("BaseURL = %q", settings.BaseURL)
	}
	if settings.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout = %v", settings.Timeout)
	}
	if settings.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", settings.LogLevel)
	}
}

func TestSettings_ApplyEnvInvalidTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	if err := DefaultSettings().ApplyEnv(); err == nil {
		t.Error("expected error for invalid timeout")
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"https", func(s *Settings) { s.BaseURL = "https://example.com" }, false},
		{"ftp scheme", func(s *Settings) { s.BaseURL = "ftp://example.com" }, true},
		{"no host", func(s *Settings) { s.BaseURL = "http://" }, true},
		{"negative timeout", func(s *Settings) { s.Timeout = -time.Second }, true},
		{"zero frame interval", func(s *Settings) { s.FrameInterval = 0 }, true},
		{"bad log level", func(s *Settings) { s.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvFileAndTrailingSlash(t *testing.T) {
	dir := t.TempDir()
	if err := InitializeAt(filepath.Join(dir, "cfg")); err != nil {
		t.Fatalf("InitializeAt: %v", err)
	}

	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte(EnvBaseURL+"=http://127.0.0.1:7000/\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not overwrite existing variables, so start from a clean slate
	t.Setenv(EnvBaseURL, "")
	os.Unsetenv(EnvBaseURL)

	settings, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.BaseURL != "http://127.0.0.1:7000" {
		t.Errorf("BaseURL = %q", settings.BaseURL)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}
