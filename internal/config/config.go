// ABOUTME: Configuration loader for the dashboard client and stub backend
// ABOUTME: Merges environment (optionally .env), config.yaml and defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is used when nothing else names a backend
	DefaultAPIURL = "http://localhost:8080"
	// DefaultMockPort is the stub backend's listen port
	DefaultMockPort = "8080"

	appDirName = "jobdash"
	fileName   = "config.yaml"
)

type Config struct {
	// Backend
	APIURL string

	// Local state
	ConfigDir string // session.json, recent.json, debug.log, config.yaml
	Dark      bool   // initial theme

	// Logging
	LogLevel  string
	LogFormat string

	// Stub backend
	MockPort        string
	MockCORSOrigins []string
}

// fileConfig is the shape of <ConfigDir>/config.yaml
type fileConfig struct {
	APIURL    string `yaml:"api_url"`
	Dark      bool   `yaml:"dark"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration. Environment wins over config.yaml, which wins
// over defaults. A .env in the working directory is loaded first when present.
func Load() (*Config, error) {
	return LoadDir("")
}

// LoadDir is Load with the config directory fixed to dir. An empty dir falls
// back to JOBDASH_CONFIG_DIR and then the default.
func LoadDir(dir string) (*Config, error) {
	_ = godotenv.Load(".env")

	if dir == "" {
		dir = getEnv("JOBDASH_CONFIG_DIR", DefaultConfigDir())
	}

	file, err := readFile(dir)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:          strings.TrimRight(getEnv("JOBDASH_API_URL", orDefault(file.APIURL, DefaultAPIURL)), "/"),
		ConfigDir:       dir,
		Dark:            getEnvBool("JOBDASH_DARK", file.Dark),
		LogLevel:        getEnv("LOG_LEVEL", orDefault(file.LogLevel, "info")),
		LogFormat:       getEnv("LOG_FORMAT", orDefault(file.LogFormat, "text")),
		MockPort:        getEnv("JOBDASH_MOCK_PORT", DefaultMockPort),
		MockCORSOrigins: getEnvStringList("JOBDASH_MOCK_CORS_ORIGINS"),
	}

	if port, err := strconv.Atoi(cfg.MockPort); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("JOBDASH_MOCK_PORT must be a port number between 1 and 65535, got %q", cfg.MockPort)
	}
	if !strings.Contains(cfg.APIURL, "://") {
		return nil, fmt.Errorf("api url %q has no scheme", cfg.APIURL)
	}

	return cfg, nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/jobdash or ~/.config/jobdash
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// FilePath returns the config.yaml location inside dir
func FilePath(dir string) string {
	return filepath.Join(dir, fileName)
}

func readFile(dir string) (fileConfig, error) {
	var fc fileConfig
	if dir == "" {
		return fc, nil
	}
	data, err := os.ReadFile(FilePath(dir))
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("read %s: %w", FilePath(dir), err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", FilePath(dir), err)
	}
	return fc, nil
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
