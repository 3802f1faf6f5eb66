package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"prober/pkg/candidate"
	"prober/pkg/domain"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains the identifiers being searched for, the candidate templates,
// prober tuning, the optional diagnostics HTTP server and shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Target identifies the exported artifact whose location is guessed
	Target struct {
		// ProjectID is the project identifier substituted for {project}
		ProjectID string `env:"TARGET_PROJECT_ID" env-default:"16763316819467624605" yaml:"projectId"`
		// ScreenID is the screen identifier substituted for {screen}
		ScreenID string `env:"TARGET_SCREEN_ID" env-default:"0a73768aa6b14d4e90b1de1c7dce16d9" yaml:"screenId"`
	} `yaml:"target"`

	// Candidates contains the templates candidate URLs are generated from.
	// Empty lists fall back to the built-in defaults of the candidate package.
	Candidates struct {
		// StorageHost is prefixed to every bucket
		StorageHost string `env:"CANDIDATES_STORAGE_HOST" env-default:"https://storage.googleapis.com" yaml:"storageHost"` //nolint: lll
		// Buckets are bucket names joined to StorageHost
		Buckets []string `env:"CANDIDATES_BUCKETS" env-separator:"," yaml:"buckets"`
		// Bases are complete base URLs tried in addition to the buckets
		Bases []string `env:"CANDIDATES_BASES" env-separator:"," yaml:"bases"`
		// Paths are path templates using {project} and {screen} placeholders
		Paths []string `env:"CANDIDATES_PATHS" env-separator:"," yaml:"paths"`
	} `yaml:"candidates"`

	// Prober contains the existence prober settings
	Prober struct {
		// Workers is the maximum number of checks in flight
		Workers int `env:"PROBER_WORKERS" env-default:"20" yaml:"workers"`
		// Timeout bounds a single check
		Timeout time.Duration `env:"PROBER_TIMEOUT" env-default:"5s" yaml:"timeout"`
		// Strategy is either find-all or find-first
		Strategy string `env:"PROBER_STRATEGY" env-default:"find-first" yaml:"strategy"`
		// UserAgent is sent with every check
		UserAgent string `env:"PROBER_USER_AGENT" env-default:"prober/1.0" yaml:"userAgent"`
	} `yaml:"prober"`

	// HTTP contains the diagnostics server settings
	HTTP struct {
		// Addr is the address the diagnostics server listens on; empty disables it
		Addr string `env:"HTTP_ADDR" env-default:"" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// GracefulShutdownTimeout is the maximum duration to wait for the diagnostics server to stop
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads the yaml config file at configPath, overlaid with environment
// variables. An empty path, or a path that does not exist, loads from the
// environment and defaults only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	useFile := configPath != ""
	if useFile {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			useFile = false
		}
	}

	var err error
	if useFile {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that cannot be corrected by defaults.
func (c *Config) Validate() error {
	if c.Prober.Workers < 1 {
		return fmt.Errorf("prober.workers must be positive, got %d", c.Prober.Workers)
	}
	if c.Prober.Timeout <= 0 {
		return fmt.Errorf("prober.timeout must be positive, got %s", c.Prober.Timeout)
	}
	switch domain.Strategy(c.Prober.Strategy) {
	case domain.StrategyFindAll, domain.StrategyFindFirst:
	default:
		return fmt.Errorf("prober.strategy must be %q or %q, got %q",
			domain.StrategyFindAll, domain.StrategyFindFirst, c.Prober.Strategy)
	}

	return nil
}

// Targets returns the configured identifiers.
func (c *Config) Targets() domain.Targets {
	return domain.Targets{ProjectID: c.Target.ProjectID, ScreenID: c.Target.ScreenID}
}

// Templates returns the configured candidate templates, substituting the
// built-in defaults for empty lists.
func (c *Config) Templates() candidate.Templates {
	tpl := candidate.DefaultTemplates()
	if c.Candidates.StorageHost != "" {
		tpl.StorageHost = c.Candidates.StorageHost
	}
	if len(c.Candidates.Buckets) > 0 {
		tpl.Buckets = c.Candidates.Buckets
	}
	if len(c.Candidates.Bases) > 0 {
		tpl.Bases = c.Candidates.Bases
	}
	if len(c.Candidates.Paths) > 0 {
		tpl.Paths = c.Candidates.Paths
	}

	return tpl
}
