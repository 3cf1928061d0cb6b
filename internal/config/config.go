package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the reconciliation service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Matching MatchingConfig `yaml:"matching"`
	Service  ServiceConfig  `yaml:"service"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig holds the record database path and the CSV sources the
// ingest step loads it from.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	MuseumsCSV   string `yaml:"museums_csv"`
	ArtistsCSV   string `yaml:"artists_csv"`
	ArtifactsCSV string `yaml:"artifacts_csv"`
}

// MatchingConfig holds the scoring thresholds and result limits.
type MatchingConfig struct {
	FuzzyThreshold     int `yaml:"fuzzy_threshold"`     // pool admission, strict (default 40)
	ConfidentThreshold int `yaml:"confident_threshold"` // match=true cutoff, strict (default 80)
	DefaultLimit       int `yaml:"default_limit"`       // per-query default (default 10)
	MaxLimit           int `yaml:"max_limit"`           // per-query hard cap (default 100)
	Workers            int `yaml:"workers"`             // batch worker pool size (default 4)
}

// ServiceConfig holds the protocol manifest identity.
type ServiceConfig struct {
	Name            string `yaml:"name"`
	BaseURL         string `yaml:"base_url"`
	IdentifierSpace string `yaml:"identifier_space"`
	SchemaSpace     string `yaml:"schema_space"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.DatabasePath == "" {
		c.Storage.DatabasePath = "data/reconcile.db"
	}
	if c.Matching.FuzzyThreshold <= 0 {
		c.Matching.FuzzyThreshold = 40
	}
	if c.Matching.ConfidentThreshold <= 0 {
		c.Matching.ConfidentThreshold = 80
	}
	if c.Matching.DefaultLimit <= 0 {
		c.Matching.DefaultLimit = 10
	}
	if c.Matching.MaxLimit <= 0 {
		c.Matching.MaxLimit = 100
	}
	if c.Matching.Workers <= 0 {
		c.Matching.Workers = 4
	}
	if c.Service.Name == "" {
		c.Service.Name = "Museum Cultural Heritage Reconciliation Service"
	}
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = fmt.Sprintf("http://localhost:%d", c.HTTP.Port)
	}
	if c.Service.IdentifierSpace == "" {
		c.Service.IdentifierSpace = "http://museum-reconciliation.example.org/identifier"
	}
	if c.Service.SchemaSpace == "" {
		c.Service.SchemaSpace = "http://museum-reconciliation.example.org/schema"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Matching.FuzzyThreshold >= c.Matching.ConfidentThreshold {
		return fmt.Errorf(
			"matching.fuzzy_threshold (%d) must be below matching.confident_threshold (%d)",
			c.Matching.FuzzyThreshold, c.Matching.ConfidentThreshold,
		)
	}
	if c.Matching.ConfidentThreshold > 100 {
		return fmt.Errorf("matching.confident_threshold must be at most 100, got %d", c.Matching.ConfidentThreshold)
	}
	if c.Matching.DefaultLimit > c.Matching.MaxLimit {
		return fmt.Errorf(
			"matching.default_limit (%d) must not exceed matching.max_limit (%d)",
			c.Matching.DefaultLimit, c.Matching.MaxLimit,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
