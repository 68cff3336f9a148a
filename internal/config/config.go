package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/cancerdx/internal/domain"
)

// Supported record store drivers.
const (
	DriverMongo = "mongo"
	DriverRedis = "redis"
)

// Config holds the cancerdx API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Model    ModelConfig    `yaml:"model"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File       string `yaml:"file"`  // optional rotated JSON log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
	ExposeErrors    bool     `yaml:"expose_errors"` // pass 500 error text to clients
}

// DatabaseConfig holds record store connection settings.
// An empty uri (mongo) or addrs (redis) leaves the store unconfigured.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // mongo, redis (default: mongo)
	URI              string   `yaml:"uri"`
	Name             string   `yaml:"name"`
	Collection       string   `yaml:"collection"`
	TLSCAFile        string   `yaml:"tls_ca_file"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Configured reports whether connection details for the selected driver are present.
func (d DatabaseConfig) Configured() bool {
	switch d.Driver {
	case DriverRedis:
		return len(d.Addrs) > 0
	default:
		return d.URI != ""
	}
}

// ModelConfig locates the classifier artifact.
type ModelConfig struct {
	Path string `yaml:"path"`
	Root string `yaml:"root"` // base for a relative path
}

// ResolvedPath returns Path, joined with Root when relative.
func (m ModelConfig) ResolvedPath() string {
	if filepath.IsAbs(m.Path) {
		return filepath.Clean(m.Path)
	}
	return filepath.Join(m.Root, m.Path)
}

// CacheConfig holds in-process cache sizes.
type CacheConfig struct {
	Records int `yaml:"records"` // 0 disables the record cache
}

// LoadDotEnv loads variables from a .env file if present. Existing variables win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates a YAML configuration file.
func LoadFile(configPath string) (Config, error) {
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
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
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"*"}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMongo
	}
	store := domain.DefaultStoreConfig()
	if c.Database.Name == "" {
		c.Database.Name = store.Database
	}
	if c.Database.Collection == "" {
		c.Database.Collection = store.Collection
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = store.KeyPrefix
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Model.Root == "" {
		c.Model.Root = "."
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 100
	}
	if c.Logging.MaxBackups <= 0 {
		c.Logging.MaxBackups = 3
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 28
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverMongo, DriverRedis:
		// ok
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverMongo, DriverRedis, c.Database.Driver)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	if c.Cache.Records < 0 {
		return fmt.Errorf("cache.records must not be negative, got %d", c.Cache.Records)
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
