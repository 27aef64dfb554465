// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Sheet    SheetConfig
	Audit    AuditConfig
	Cache    CacheConfig
	Mutation MutationConfig
	UI       UIConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 2m30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"150s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MaxImportSize is the largest accepted import upload in bytes (default: 10MB)
	MaxImportSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`
}

// SheetConfig locates the spreadsheet endpoint and its tabs.
type SheetConfig struct {
	// Endpoint is the base URL of the spreadsheet RPC script (required)
	Endpoint string `env:"SHEET_ENDPOINT" envAlt:"VITE_APP_URL" required:"true"`

	// ID is the spreadsheet identifier (required)
	ID string `env:"SHEET_ID" envAlt:"VITE_SHEET_ID" required:"true"`

	// CustomerSheet is the tab holding customer rows (default: Customers)
	CustomerSheet string `env:"CUSTOMER_SHEET_NAME" envAlt:"VITE_SHEET_NAME" default:"Customers"`

	// ItemSheet is the tab holding line-item rows (default: Items)
	ItemSheet string `env:"ITEM_SHEET_NAME" envAlt:"VITE_CUSTOMER_ITEM" default:"Items"`

	// StudentSheet is the tab holding student rows (default: Records)
	StudentSheet string `env:"STUDENT_SHEET_NAME" default:"Records"`

	// Timeout bounds a single RPC call (default: 30s)
	Timeout time.Duration `env:"SHEET_TIMEOUT" default:"30s"`
}

// AuditConfig selects where mutation plans are recorded. Postgres wins when
// both are set; with neither, auditing is off.
type AuditConfig struct {
	// DatabaseURL is a PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// SQLitePath is a local database file used when DatabaseURL is empty
	SQLitePath string `env:"AUDIT_SQLITE_PATH"`

	// Retention is how long audit entries are kept (default: 2160h, 90 days)
	Retention time.Duration `env:"AUDIT_RETENTION" default:"2160h"`

	// PruneInterval is how often old entries are deleted (default: 24h)
	PruneInterval time.Duration `env:"AUDIT_PRUNE_INTERVAL" default:"24h"`
}

// Enabled reports whether any audit sink is configured.
func (c AuditConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.SQLitePath != ""
}

// CacheConfig configures the optional Redis snapshot cache.
type CacheConfig struct {
	// RedisAddr enables the cache when set (host:port)
	RedisAddr string `env:"REDIS_ADDR"`

	// RedisPassword authenticates to Redis
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB selects the Redis database (default: 0)
	RedisDB int `env:"REDIS_DB" default:"0"`

	// TTL is how long a list snapshot stays cached (default: 30s)
	TTL time.Duration `env:"CACHE_TTL" default:"30s"`
}

// Enabled reports whether the snapshot cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// MutationConfig holds multi-step mutation settings.
type MutationConfig struct {
	// MaxWait is how long a mutation waits for a busy collection (default: 0s, fail at once)
	MaxWait time.Duration `env:"MUTATION_MAX_WAIT" default:"0s"`

	// Timeout bounds one whole mutation plan (default: 2m)
	Timeout time.Duration `env:"MUTATION_TIMEOUT" default:"2m"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// ToastDuration is how long a notice stays visible (default: 3s)
	ToastDuration time.Duration `env:"TOAST_DURATION" default:"3s"`

	// CloseDelay is the pause before a dialog closes after success (default: 1s)
	CloseDelay time.Duration `env:"DIALOG_CLOSE_DELAY" default:"1s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
