package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Notification dispatch modes.
const (
	NotificationModePubSub = "pubsub"
	NotificationModeRiver  = "river"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Store         StoreConfig         `yaml:"store"`
	HTTP          HTTPConfig          `yaml:"http"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// StoreConfig selects the entity store backing the service.
type StoreConfig struct {
	Driver string `yaml:"driver"` // postgres|memory
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ApplyRateLimit  float64       `yaml:"apply_rate_limit"` // requests per second per IP
	ApplyBurst      int           `yaml:"apply_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// NotificationsConfig holds recruitment webhook delivery configuration.
type NotificationsConfig struct {
	Mode    string        `yaml:"mode"` // pubsub|river
	Timeout time.Duration `yaml:"timeout"`
	Footer  string        `yaml:"footer"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	ServiceName string `yaml:"service_name"`
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Observability.Environment == "" || c.Observability.Environment == "development"
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when neither file nor env set a value.
func Default() *Config {
	return &Config{
		Store: StoreConfig{Driver: StoreDriverPostgres},
		HTTP: HTTPConfig{
			Address:         ":8080",
			ApplyRateLimit:  0.2,
			ApplyBurst:      5,
			ShutdownTimeout: 10 * time.Second,
		},
		Notifications: NotificationsConfig{
			Mode:    NotificationModePubSub,
			Timeout: 10 * time.Second,
			Footer:  "L2 Clan Manager • Recruitment System",
		},
		Observability: ObservabilityConfig{
			Environment: "development",
			LogLevel:    "info",
			ServiceName: "clan-roster",
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("APPLY_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid APPLY_RATE_LIMIT value: %w", err)
		}
		cfg.HTTP.ApplyRateLimit = f
	}
	if v := os.Getenv("APPLY_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid APPLY_BURST value: %w", err)
		}
		cfg.HTTP.ApplyBurst = n
	}
	if v := os.Getenv("TRUST_PROXY_HEADERS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TRUST_PROXY_HEADERS value: %w", err)
		}
		cfg.HTTP.TrustProxyHeaders = b
	}
	if v := os.Getenv("NOTIFICATIONS_MODE"); v != "" {
		cfg.Notifications.Mode = v
	}
	if v := os.Getenv("NOTIFICATIONS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NOTIFICATIONS_TIMEOUT value: %w", err)
		}
		cfg.Notifications.Timeout = d
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

// Validate checks the settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres dsn is required for store driver %q (set DATABASE_URL)", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Notifications.Mode {
	case NotificationModePubSub:
	case NotificationModeRiver:
		if c.Store.Driver != StoreDriverPostgres {
			return fmt.Errorf("notification mode %q requires the postgres store", c.Notifications.Mode)
		}
	default:
		return fmt.Errorf("unknown notification mode %q", c.Notifications.Mode)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
