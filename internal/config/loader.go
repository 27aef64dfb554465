package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with a custom variable lookup.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), getenv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value, getenv func(string) string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		// Recurse into nested structs
		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := loadStruct(fieldVal, getenv); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		// Try primary env var, then alternate
		value := strings.TrimSpace(getenv(envName))
		if value == "" && envAlt != "" {
			value = strings.TrimSpace(getenv(envAlt))
		}

		if value == "" {
			if required {
				if envAlt != "" {
					return fmt.Errorf("required environment variable %s (or %s) is not set", envName, envAlt)
				}
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		// Handle time.Duration specially
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Sheet validation
	if c.Sheet.Endpoint == "" {
		errs = append(errs, "SHEET_ENDPOINT is required")
	} else if u, err := url.Parse(c.Sheet.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("SHEET_ENDPOINT (%q) must be an absolute URL", c.Sheet.Endpoint))
	}
	if c.Sheet.ID == "" {
		errs = append(errs, "SHEET_ID is required")
	}
	if c.Sheet.CustomerSheet == "" || c.Sheet.ItemSheet == "" || c.Sheet.StudentSheet == "" {
		errs = append(errs, "sheet names must not be empty")
	}
	if c.Sheet.Timeout <= 0 {
		errs = append(errs, "SHEET_TIMEOUT must be positive")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MaxImportSize <= 0 {
		errs = append(errs, "IMPORT_MAX_FILE_SIZE must be positive")
	}

	// Audit validation
	if c.Audit.DatabaseURL != "" && c.Audit.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.Audit.Enabled() && (c.Audit.Retention <= 0 || c.Audit.PruneInterval <= 0) {
		errs = append(errs, "AUDIT_RETENTION and AUDIT_PRUNE_INTERVAL must be positive")
	}

	// Cache validation
	if c.Cache.Enabled() && c.Cache.TTL <= 0 {
		errs = append(errs, "CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	if c.Cache.RedisDB < 0 {
		errs = append(errs, "REDIS_DB must be non-negative")
	}

	// Mutation validation
	if c.Mutation.MaxWait < 0 {
		errs = append(errs, "MUTATION_MAX_WAIT must be non-negative")
	}
	if c.Mutation.Timeout <= 0 {
		errs = append(errs, "MUTATION_TIMEOUT must be positive")
	}

	// UI validation
	if c.UI.ToastDuration <= 0 {
		errs = append(errs, "TOAST_DURATION must be positive")
	}
	if c.UI.CloseDelay < 0 {
		errs = append(errs, "DIALOG_CLOSE_DELAY must be non-negative")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Sensitive values like database URLs are masked.
func (c *Config) String() string {
	mask := func(s string) string {
		if s == "" {
			return `""`
		}
		return "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Sheet: {Endpoint: %s, ID: %s, Customers: %q, Items: %q, Students: %q}, ",
		mask(c.Sheet.Endpoint), mask(c.Sheet.ID), c.Sheet.CustomerSheet, c.Sheet.ItemSheet, c.Sheet.StudentSheet))
	b.WriteString(fmt.Sprintf("Audit: {DatabaseURL: %s, SQLitePath: %q, Retention: %s}, ",
		mask(c.Audit.DatabaseURL), c.Audit.SQLitePath, c.Audit.Retention))
	b.WriteString(fmt.Sprintf("Cache: {RedisAddr: %q, RedisPassword: %s, TTL: %s}, ",
		c.Cache.RedisAddr, mask(c.Cache.RedisPassword), c.Cache.TTL))
	b.WriteString(fmt.Sprintf("Mutation: {MaxWait: %s, Timeout: %s}, ", c.Mutation.MaxWait, c.Mutation.Timeout))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
