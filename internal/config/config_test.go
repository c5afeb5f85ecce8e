// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, env overrides, .env and config.yaml precedence

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(withCleanEnv(t, dir, nil))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("Expected config dir %s, got %s", dir, cfg.ConfigDir)
	}
	if cfg.MockPort != "8080" {
		t.Errorf("Expected default mock port 8080, got %s", cfg.MockPort)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("Expected info/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Dark {
		t.Error("Expected light theme by default")
	}
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(withCleanEnv(t, dir, nil))

	os.WriteFile(FilePath(dir), []byte("api_url: http://jobs.internal:9000/\ndark: true\nlog_level: debug\n"), 0600)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "http://jobs.internal:9000" {
		t.Errorf("Expected file API URL without trailing slash, got %s", cfg.APIURL)
	}
	if !cfg.Dark {
		t.Error("Expected dark from file")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug from file, got %s", cfg.LogLevel)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(withCleanEnv(t, dir, map[string]string{
		"JOBDASH_API_URL": "http://env:1234",
		"JOBDASH_DARK":    "false",
	}))

	os.WriteFile(FilePath(dir), []byte("api_url: http://file:1\ndark: true\n"), 0600)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "http://env:1234" {
		t.Errorf("Expected env API URL, got %s", cfg.APIURL)
	}
	if cfg.Dark {
		t.Error("Expected env to turn dark off")
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(withCleanEnv(t, dir, nil))

	os.WriteFile(FilePath(dir), []byte("api_url: [unterminated"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid yaml, got nil")
	}
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000"} {
		t.Run(port, func(t *testing.T) {
			t.Cleanup(withCleanEnv(t, t.TempDir(), map[string]string{"JOBDASH_MOCK_PORT": port}))
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for port %q", port)
			}
		})
	}
}

func TestLoadConfig_RequiresScheme(t *testing.T) {
	t.Cleanup(withCleanEnv(t, t.TempDir(), map[string]string{"JOBDASH_API_URL": "localhost:8080"}))
	if _, err := Load(); err == nil {
		t.Error("Expected error for API URL without scheme")
	}
}

func TestLoadConfig_CORSOrigins(t *testing.T) {
	t.Cleanup(withCleanEnv(t, t.TempDir(), map[string]string{
		"JOBDASH_MOCK_CORS_ORIGINS": "http://a.test, ,http://b.test",
	}))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cfg.MockCORSOrigins) != 2 || cfg.MockCORSOrigins[1] != "http://b.test" {
		t.Errorf("Unexpected origins %v", cfg.MockCORSOrigins)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Cleanup(withCleanEnv(t, "", map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg"}))
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "jobdash") {
		t.Errorf("Expected XDG path, got %s", got)
	}
}

func TestLoadDir_OverridesEnv(t *testing.T) {
	flagDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(flagDir, "config.yaml"), []byte("api_url: http://flagdir.test\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(withCleanEnv(t, t.TempDir(), nil))

	cfg, err := LoadDir(flagDir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ConfigDir != flagDir {
		t.Errorf("Expected config dir %s, got %s", flagDir, cfg.ConfigDir)
	}
	if cfg.APIURL != "http://flagdir.test" {
		t.Errorf("Expected URL from the given dir's config.yaml, got %s", cfg.APIURL)
	}
}
