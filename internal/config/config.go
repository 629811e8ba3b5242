// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	Pacing  PacingConfig  `mapstructure:"pacing" yaml:"pacing"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// BrowserConfig controls how the Chrome process is launched.
type BrowserConfig struct {
	Headless      bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath      string        `mapstructure:"exec_path" yaml:"exec_path"`
	UserDataDir   string        `mapstructure:"user_data_dir" yaml:"user_data_dir"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	Args          []string      `mapstructure:"args" yaml:"args"`
	Debug         bool          `mapstructure:"debug" yaml:"debug"`
	LaunchTimeout time.Duration `mapstructure:"launch_timeout" yaml:"launch_timeout"`
	// LaunchRate caps browser launches per second across all operations.
	LaunchRate   float64       `mapstructure:"launch_rate" yaml:"launch_rate"`
	CloseTimeout time.Duration `mapstructure:"close_timeout" yaml:"close_timeout"`
}

// SessionConfig describes where authenticated state comes from.
type SessionConfig struct {
	CookieFile   string        `mapstructure:"cookie_file" yaml:"cookie_file"`
	HomeURL      string        `mapstructure:"home_url" yaml:"home_url"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
}

// SearchConfig holds the timeouts and retry budgets of the search pipeline.
type SearchConfig struct {
	DefaultLimit    int           `mapstructure:"default_limit" yaml:"default_limit"`
	Attempts        RetryConfig   `mapstructure:"attempts" yaml:"attempts"`
	Submit          RetryConfig   `mapstructure:"submit" yaml:"submit"`
	SubmitTimeout   time.Duration `mapstructure:"submit_timeout" yaml:"submit_timeout"`
	ResultsTimeout  time.Duration `mapstructure:"results_timeout" yaml:"results_timeout"`
	DetailTimeout   time.Duration `mapstructure:"detail_timeout" yaml:"detail_timeout"`
	CloseTimeout    time.Duration `mapstructure:"close_timeout" yaml:"close_timeout"`
	CommentsTimeout time.Duration `mapstructure:"comments_timeout" yaml:"comments_timeout"`
	ErrorMarkers    []string      `mapstructure:"error_markers" yaml:"error_markers"`
}

// RetryConfig is one retry layer: how many tries and how long to back off between them.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	BackoffMin  time.Duration `mapstructure:"backoff_min" yaml:"backoff_min"`
	BackoffMax  time.Duration `mapstructure:"backoff_max" yaml:"backoff_max"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// NewDefaultConfig returns a Config populated only from SetDefaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "rednote-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.user_data_dir", "")
	v.SetDefault("browser.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	v.SetDefault("browser.debug", false)
	v.SetDefault("browser.launch_timeout", "30s")
	v.SetDefault("browser.launch_rate", 0.5)
	v.SetDefault("browser.close_timeout", "10s")

	// -- Session --
	v.SetDefault("session.cookie_file", "~/.rednote/cookies.json")
	v.SetDefault("session.home_url", "https://www.xiaohongshu.com")
	v.SetDefault("session.probe_timeout", "10s")

	// -- Pacing (see pacing_config.go) --
	setPacingDefaults(v)

	// -- Search --
	v.SetDefault("search.default_limit", 10)
	v.SetDefault("search.attempts.max_attempts", 3)
	v.SetDefault("search.attempts.backoff_min", "2s")
	v.SetDefault("search.attempts.backoff_max", "5s")
	v.SetDefault("search.submit.max_attempts", 3)
	v.SetDefault("search.submit.backoff_min", "1s")
	v.SetDefault("search.submit.backoff_max", "2s")
	v.SetDefault("search.submit_timeout", "5s")
	v.SetDefault("search.results_timeout", "10s")
	v.SetDefault("search.detail_timeout", "30s")
	v.SetDefault("search.close_timeout", "30s")
	v.SetDefault("search.comments_timeout", "30s")
	v.SetDefault("search.error_markers", []string{"安全限制", "访问频繁", "请稍后再试", "Something went wrong"})

	// -- Output --
	v.SetDefault("output.format", "json")
	v.SetDefault("output.path", "")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ExpandPaths resolves '~' in every filesystem path of the configuration.
func (c *Config) ExpandPaths() error {
	paths := []*string{&c.Session.CookieFile, &c.Browser.UserDataDir, &c.Logger.LogFile, &c.Output.Path}
	for _, p := range paths {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Session.HomeURL == "" {
		return fmt.Errorf("session.home_url is required")
	}
	if c.Browser.LaunchRate < 0 {
		return fmt.Errorf("browser.launch_rate must not be negative")
	}
	if err := c.Pacing.Validate(); err != nil {
		return fmt.Errorf("pacing configuration invalid: %w", err)
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search configuration invalid: %w", err)
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "jsonl":
	default:
		return fmt.Errorf("output.format must be one of json, jsonl (got %q)", c.Output.Format)
	}
	return nil
}

// Validate checks the search settings.
func (s *SearchConfig) Validate() error {
	if s.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be a positive integer")
	}
	if err := s.Attempts.Validate(); err != nil {
		return fmt.Errorf("attempts: %w", err)
	}
	if err := s.Submit.Validate(); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	timeouts := map[string]time.Duration{
		"submit_timeout":   s.SubmitTimeout,
		"results_timeout":  s.ResultsTimeout,
		"detail_timeout":   s.DetailTimeout,
		"close_timeout":    s.CloseTimeout,
		"comments_timeout": s.CommentsTimeout,
	}
	for name, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be a positive duration", name)
		}
	}
	return nil
}

// Validate checks a single retry layer.
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be greater than 0")
	}
	if r.BackoffMin < 0 || r.BackoffMax < r.BackoffMin {
		return fmt.Errorf("backoff range [%v, %v] is invalid", r.BackoffMin, r.BackoffMax)
	}
	return nil
}
