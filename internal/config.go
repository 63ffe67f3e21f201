package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app" json:"app"`
	SQLite   SQLiteConfig      `yaml:"sqlite" json:"sqlite"`
	Output   DirConfig         `yaml:"output" json:"output"`
	Plans    DirConfig         `yaml:"plans" json:"plans"`
	Search   SearchConfig      `yaml:"search" json:"search"`
	Trends   TrendsConfig      `yaml:"trends" json:"trends"`
	Auth     AuthConfig        `yaml:"auth" json:"auth"`
	Analysis AnalysisConfig    `yaml:"analysis" json:"analysis"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		v    validation.Validatable
	}{
		{"app", &c.App},
		{"sqlite", &c.SQLite},
		{"output", &c.Output},
		{"plans", &c.Plans},
		{"search", &c.Search},
		{"trends", &c.Trends},
		{"analysis", &c.Analysis},
	}
	for _, chk := range checks {
		if err := chk.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", chk.name, err)
		}
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" json:"log_level"`
	HTTP     HTTPConfig `yaml:"http" json:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port" json:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path" json:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// DirConfig points at a directory seoscout reads from or writes to.
type DirConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// Validate validates the directory configuration.
func (c *DirConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// SearchConfig configures the SearXNG search backend. An empty BaseURL
// disables it.
type SearchConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	RPS     float64       `yaml:"rps" json:"rps"`
}

// Enabled reports whether a search backend is configured.
func (c *SearchConfig) Enabled() bool { return c.BaseURL != "" }

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
		validation.Field(&c.Timeout, validation.Required),
		validation.Field(&c.RPS, validation.Min(0.0)),
	)
}

// TrendsConfig configures the trends backend. An empty BaseURL disables
// trend verification.
type TrendsConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	BatchSize int           `yaml:"batch_size" json:"batch_size"`
	MinDelay  time.Duration `yaml:"min_delay" json:"min_delay"`
}

// Enabled reports whether a trends backend is configured.
func (c *TrendsConfig) Enabled() bool { return c.BaseURL != "" }

// Validate validates the trends configuration.
func (c *TrendsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
		validation.Field(&c.Timeout, validation.Required),
		validation.Field(&c.BatchSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MinDelay, validation.Min(time.Duration(0))),
	)
}

// AnalysisConfig holds pipeline defaults.
type AnalysisConfig struct {
	LongtailCount int `yaml:"longtail_count" json:"longtail_count"`
	BatchWorkers  int `yaml:"batch_workers" json:"batch_workers"`
}

// Validate validates the analysis configuration.
func (c *AnalysisConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LongtailCount, validation.Min(0)),
		validation.Field(&c.BatchWorkers, validation.Required, validation.Min(1), validation.Max(64)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode" json:"mode"`
	Token string `yaml:"token" json:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./seoscout.db",
		},
		Output: DirConfig{
			Dir: "./output",
		},
		Plans: DirConfig{
			Dir: "./plans",
		},
		Search: SearchConfig{
			Timeout: 10 * time.Second,
			RPS:     1,
		},
		Trends: TrendsConfig{
			Timeout:   30 * time.Second,
			BatchSize: 5,
			MinDelay:  time.Second,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Analysis: AnalysisConfig{
			LongtailCount: 20,
			BatchWorkers:  4,
		},
	}
}
