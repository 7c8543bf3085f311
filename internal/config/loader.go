package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// EnvDevelopment enables error detail in API responses.
const EnvDevelopment = "development"

// Config captures the service configuration.
type Config struct {
	HTTPPort        int           `yaml:"http_port"`
	Environment     string        `yaml:"environment"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	Storage         StorageConfig `yaml:"storage"`
	Log             LogConfig     `yaml:"log"`
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	SQLitePath   string `yaml:"sqlite_path"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, EnvDevelopment)
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		HTTPPort:        8080,
		Environment:     "production",
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: 10 * time.Second,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			SQLitePath: "hrms.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// HRMS_CONFIG_FILE when set, then the process environment.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("HRMS_CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("HRMS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "HRMS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if env := strings.TrimSpace(os.Getenv("HRMS_ENV")); env != "" {
		cfg.Environment = env
	}

	if driver := strings.TrimSpace(os.Getenv("HRMS_STORAGE_DRIVER")); driver != "" {
		cfg.Storage.Driver = strings.ToLower(driver)
	}

	if path := strings.TrimSpace(os.Getenv("HRMS_SQLITE_PATH")); path != "" {
		cfg.Storage.SQLitePath = path
	}

	if dsn := strings.TrimSpace(os.Getenv("HRMS_DATABASE_DSN")); dsn != "" {
		cfg.Storage.DSN = dsn
	}

	if conns := strings.TrimSpace(os.Getenv("HRMS_DATABASE_MAX_OPEN_CONNS")); conns != "" {
		n, err := strconv.Atoi(conns)
		if err != nil || n < 0 {
			invalid = append(invalid, "HRMS_DATABASE_MAX_OPEN_CONNS")
		} else {
			cfg.Storage.MaxOpenConns = n
		}
	}

	if origins := strings.TrimSpace(os.Getenv("HRMS_CORS_ORIGINS")); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	if level := strings.TrimSpace(os.Getenv("HRMS_LOG_LEVEL")); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}

	if format := strings.TrimSpace(os.Getenv("HRMS_LOG_FORMAT")); format != "" {
		cfg.Log.Format = strings.ToLower(format)
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("HRMS_SHUTDOWN_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "HRMS_SHUTDOWN_TIMEOUT")
		} else {
			cfg.ShutdownTimeout = timeout
		}
	}

	missing, invalid = cfg.check(missing, invalid)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	return nil
}

// check validates the merged values, naming the environment variable (or file
// key) that controls each offending setting.
func (c Config) check(missing, invalid []string) ([]string, []string) {
	seen := make(map[string]bool, len(invalid))
	for _, key := range invalid {
		seen[key] = true
	}
	flag := func(key string) {
		if !seen[key] {
			seen[key] = true
			invalid = append(invalid, key)
		}
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		flag("HRMS_HTTP_PORT")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			missing = append(missing, "HRMS_SQLITE_PATH")
		}
	case DriverPostgres, DriverMySQL:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			missing = append(missing, "HRMS_DATABASE_DSN")
		}
	default:
		flag("HRMS_STORAGE_DRIVER")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		flag("HRMS_LOG_LEVEL")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		flag("HRMS_LOG_FORMAT")
	}

	if c.ShutdownTimeout <= 0 {
		flag("HRMS_SHUTDOWN_TIMEOUT")
	}
	// Server timeouts only come from the config file.
	if c.ReadTimeout < 0 {
		flag("read_timeout")
	}
	if c.WriteTimeout < 0 {
		flag("write_timeout")
	}
	if c.IdleTimeout < 0 {
		flag("idle_timeout")
	}

	return missing, invalid
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
