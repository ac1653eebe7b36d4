package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds settings for the HTTP server and CLI.
type Config struct {
	// Port the API listens on.
	Port string `yaml:"port"`

	// AllowedOrigins lists CORS origins; empty allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogJSON switches logrus to the JSON formatter.
	LogJSON bool `yaml:"log_json"`

	// GinMode is passed to gin.SetMode (debug, release, test).
	GinMode string `yaml:"gin_mode"`

	Metrics Metrics `yaml:"metrics"`
}

// Metrics controls OTLP metric export for the HTTP server.
type Metrics struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address (host:port).
	Endpoint string `yaml:"endpoint"`

	// Interval between periodic pushes.
	Interval time.Duration `yaml:"interval"`

	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port: "2000",
		AllowedOrigins: []string{
			"http://localhost:1000",
			"http://127.0.0.1:1000",
		},
		LogLevel: "info",
		GinMode:  "release",
		Metrics: Metrics{
			Endpoint:    "localhost:4317",
			Interval:    10 * time.Second,
			ServiceName: "cac-decision",
		},
	}
}

// Load reads the YAML file at path (a missing file is not an error) and then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
			logrus.WithField("path", path).Debug("config file not found, using defaults")
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", c.GinMode)
	}
	if c.Metrics.Enabled {
		if strings.TrimSpace(c.Metrics.Endpoint) == "" {
			return errors.New("metrics endpoint is required when metrics are enabled")
		}
		if c.Metrics.Interval <= 0 {
			return fmt.Errorf("invalid metrics interval %s", c.Metrics.Interval)
		}
	}
	return nil
}

// ConfigureLogging applies the logging settings to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if c.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func applyEnv(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}
	if origins := strings.TrimSpace(os.Getenv("CAC_ALLOWED_ORIGINS")); origins != "" {
		var list []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				list = append(list, o)
			}
		}
		cfg.AllowedOrigins = list
	}
	if level := strings.TrimSpace(os.Getenv("CAC_LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if v := strings.TrimSpace(os.Getenv("CAC_LOG_JSON")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CAC_LOG_JSON: %w", err)
		}
		cfg.LogJSON = b
	}
	if mode := strings.TrimSpace(os.Getenv("GIN_MODE")); mode != "" {
		cfg.GinMode = mode
	}

	endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"))
	if endpoint == "" {
		endpoint = strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	}
	if endpoint != "" {
		cfg.Metrics.Endpoint = endpoint
		cfg.Metrics.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv("CAC_METRICS_ENABLED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CAC_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = b
	}
	return nil
}
