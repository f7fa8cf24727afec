// Package config loads the configuration of the backend.
//
// Values are resolved in this order, later sources override earlier ones:
// defaults, the TOML configuration file, the .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/expense-tracer/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// EnvConfigFile is the environment variable holding the path of the
// configuration file if none is passed explicitly.
const EnvConfigFile = "EXPENSE_TRACER_CONFIG"

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration of the backend.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`

	// Location is the IANA time zone the current day is determined in.
	// "Local" is the time zone of the host.
	Location string `toml:"location"`
}

type DatabaseConfig struct {
	Driver      string   `toml:"driver"`
	DSN         string   `toml:"dsn"`
	Timeout     Duration `toml:"timeout"`
	MultiTenant bool     `toml:"multi_tenant"`
}

type ServerConfig struct {
	URL              string `toml:"url"`
	Port             int    `toml:"port"`
	GinMode          string `toml:"gin_mode"`
	CORSAllowOrigins string `toml:"cors_allow_origins"`
	EnablePprof      bool   `toml:"enable_pprof"`
}

type LogConfig struct {
	Format string `toml:"format"` // "human" or "json". Empty selects by gin mode
	Level  string `toml:"level"`
}

// Duration is a time.Duration that is read from strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = duration
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:  string(models.DriverSQLite),
			DSN:     "data/expenses.db",
			Timeout: Duration{models.DefaultTimeout},
		},
		Server: ServerConfig{
			URL:     "http://localhost:8080",
			Port:    8080,
			GinMode: "release",
		},
		Log: LogConfig{
			Level: "info",
		},
		Location: "Local",
	}
}

// Load reads the configuration.
//
// path is the TOML configuration file. If it is empty, the file named in
// EXPENSE_TRACER_CONFIG is read, if any. envFiles are loaded into the
// environment without overriding variables that are already set. They
// default to ".env", missing files are skipped.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("reading configuration file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading %s: %w", file, err)
		}
	}

	err := cfg.applyEnv()
	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// applyEnv overrides the configuration with environment variables.
func (cfg *Config) applyEnv() error {
	values := map[string]*string{
		"DB_DRIVER":          &cfg.Database.Driver,
		"DB_DSN":             &cfg.Database.DSN,
		"API_URL":            &cfg.Server.URL,
		"GIN_MODE":           &cfg.Server.GinMode,
		"CORS_ALLOW_ORIGINS": &cfg.Server.CORSAllowOrigins,
		"LOG_FORMAT":         &cfg.Log.Format,
		"LOG_LEVEL":          &cfg.Log.Level,
		"TZ_LOCATION":        &cfg.Location,
	}

	for key, target := range values {
		if value, ok := os.LookupEnv(key); ok {
			*target = value
		}
	}

	bools := map[string]*bool{
		"MULTI_TENANT": &cfg.Database.MultiTenant,
		"ENABLE_PPROF": &cfg.Server.EnablePprof,
	}

	for key, target := range bools {
		value, ok := os.LookupEnv(key)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got '%s'", ErrInvalid, key, value)
		}
		*target = b
	}

	if value, ok := os.LookupEnv("DB_TIMEOUT"); ok {
		err := cfg.Database.Timeout.UnmarshalText([]byte(value))
		if err != nil {
			return fmt.Errorf("%w: DB_TIMEOUT: %v", ErrInvalid, err)
		}
	}

	if value, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: PORT must be a number, got '%s'", ErrInvalid, value)
		}
		cfg.Server.Port = port
	}

	return nil
}

// Validate checks the configuration for errors.
func (cfg Config) Validate() error {
	switch models.Driver(cfg.Database.Driver) {
	case models.DriverSQLite, models.DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown database driver '%s'", ErrInvalid, cfg.Database.Driver)
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("%w: the database DSN must not be empty", ErrInvalid)
	}

	if cfg.Database.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: the database timeout must be positive, got %s", ErrInvalid, cfg.Database.Timeout)
	}

	if _, err := cfg.BaseURL(); err != nil {
		return err
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: the port must be between 1 and 65535, got %d", ErrInvalid, cfg.Server.Port)
	}

	// gin.SetMode panics on unknown modes
	switch cfg.Server.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("%w: the gin mode must be one of %s, %s or %s, got '%s'", ErrInvalid, gin.DebugMode, gin.ReleaseMode, gin.TestMode, cfg.Server.GinMode)
	}

	switch cfg.Log.Format {
	case "", "human", "json":
	default:
		return fmt.Errorf("%w: the log format must be human or json, got '%s'", ErrInvalid, cfg.Log.Format)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if _, err := cfg.TimeLocation(); err != nil {
		return err
	}

	return nil
}

// BaseURL returns the externally visible URL of the API.
func (cfg Config) BaseURL() (*url.URL, error) {
	u, err := url.Parse(cfg.Server.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: the API URL is not a valid URL: %v", ErrInvalid, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: the API URL must contain scheme and host, got '%s'", ErrInvalid, cfg.Server.URL)
	}

	return u, nil
}

// TimeLocation returns the time zone the current day is determined in.
func (cfg Config) TimeLocation() (*time.Location, error) {
	location, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone '%s'", ErrInvalid, cfg.Location)
	}

	return location, nil
}

// StoreOptions returns the options for the store.
func (cfg Config) StoreOptions() models.Options {
	return models.Options{
		Timeout:     cfg.Database.Timeout.Duration,
		MultiTenant: cfg.Database.MultiTenant,
	}
}

// Export sets the environment variables read by the router from the
// configuration.
func (cfg Config) Export() error {
	if cfg.Server.CORSAllowOrigins != "" {
		if err := os.Setenv("CORS_ALLOW_ORIGINS", cfg.Server.CORSAllowOrigins); err != nil {
			return err
		}
	}

	return os.Setenv("ENABLE_PPROF", strconv.FormatBool(cfg.Server.EnablePprof))
}
