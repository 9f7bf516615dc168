package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/0shark/markettower/internal/calendar"
	"github.com/0shark/markettower/internal/core"
	"github.com/0shark/markettower/internal/fetch"
	"github.com/0shark/markettower/internal/provider/yahoo"
	"github.com/0shark/markettower/internal/timerange"
)

// EnvPrefix namespaces environment overrides, e.g. MARKETTOWER_FETCH_MAX_ATTEMPTS.
const EnvPrefix = "MARKETTOWER"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Market   MarketConfig   `mapstructure:"market"`
	Ranges   RangesConfig   `mapstructure:"ranges"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Provider ProviderConfig `mapstructure:"provider"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// MarketConfig holds exchange session settings.
type MarketConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// RangesConfig overrides the default range and the per-range interval table.
// An empty Intervals map keeps the built-in table.
type RangesConfig struct {
	Default   string              `mapstructure:"default"`
	Intervals map[string][]string `mapstructure:"intervals"`
}

// FetchConfig holds chart retry settings.
type FetchConfig struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	Backoff        time.Duration `mapstructure:"backoff"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ProviderConfig selects and configures the upstream market data source.
type ProviderConfig struct {
	Name          string        `mapstructure:"name"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every scalar default so env overrides apply even
// when the key is absent from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("market.timezone", d.Market.Timezone)
	v.SetDefault("ranges.default", d.Ranges.Default)
	v.SetDefault("fetch.max_attempts", d.Fetch.MaxAttempts)
	v.SetDefault("fetch.backoff", d.Fetch.Backoff)
	v.SetDefault("fetch.request_timeout", d.Fetch.RequestTimeout)
	v.SetDefault("provider.name", d.Provider.Name)
	v.SetDefault("provider.base_url", d.Provider.BaseURL)
	v.SetDefault("provider.timeout", d.Provider.Timeout)
	v.SetDefault("provider.user_agent", d.Provider.UserAgent)
	v.SetDefault("provider.rate_per_second", d.Provider.RatePerSecond)
	v.SetDefault("provider.burst", d.Provider.Burst)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	opts := fetch.DefaultOptions()
	yc := yahoo.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "release",
		},
		Market: MarketConfig{
			Timezone: calendar.DefaultTimezone,
		},
		Ranges: RangesConfig{
			Default: string(timerange.DefaultRange),
		},
		Fetch: FetchConfig{
			MaxAttempts:    opts.MaxAttempts,
			Backoff:        opts.Backoff,
			RequestTimeout: opts.RequestTimeout,
		},
		Provider: ProviderConfig{
			Name:          "yahoo",
			BaseURL:       yc.BaseURL,
			Timeout:       yc.Timeout,
			UserAgent:     yc.UserAgent,
			RatePerSecond: yc.RatePerSecond,
			Burst:         yc.Burst,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Fetch.MaxAttempts < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_attempts must be at least 1, got %d", c.Fetch.MaxAttempts))
	}
	if c.Fetch.Backoff < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backoff cannot be negative, got %s", c.Fetch.Backoff))
	}
	if c.Fetch.RequestTimeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("request_timeout cannot be negative, got %s", c.Fetch.RequestTimeout))
	}

	if c.Provider.Name == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("provider name required"))
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Table(); err != nil {
		return err
	}

	return nil
}

// Location resolves the exchange timezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Market.Timezone
	if name == "" {
		name = calendar.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("market timezone %q: %w", name, err))
	}
	return loc, nil
}

// Table builds the range/interval table. Without configured intervals the
// built-in table is used with the configured default range.
func (c *Config) Table() (timerange.Table, error) {
	def := timerange.Range(c.Ranges.Default)
	if def == "" {
		def = timerange.DefaultRange
	}

	var intervals map[timerange.Range][]timerange.Interval
	if len(c.Ranges.Intervals) == 0 {
		base := timerange.DefaultTable()
		intervals = make(map[timerange.Range][]timerange.Interval, len(timerange.Ranges()))
		for _, r := range timerange.Ranges() {
			intervals[r] = base.Permitted(r)
		}
	} else {
		intervals = make(map[timerange.Range][]timerange.Interval, len(c.Ranges.Intervals))
		for r, list := range c.Ranges.Intervals {
			converted := make([]timerange.Interval, len(list))
			for i, s := range list {
				converted[i] = timerange.Interval(s)
			}
			intervals[timerange.Range(r)] = converted
		}
	}

	return timerange.NewTable(def, intervals)
}

// FetchOptions returns the chart retry settings.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		MaxAttempts:    c.Fetch.MaxAttempts,
		Backoff:        c.Fetch.Backoff,
		RequestTimeout: c.Fetch.RequestTimeout,
	}
}

// YahooConfig returns the Yahoo client settings.
func (c *Config) YahooConfig() yahoo.Config {
	return yahoo.Config{
		BaseURL:       c.Provider.BaseURL,
		Timeout:       c.Provider.Timeout,
		UserAgent:     c.Provider.UserAgent,
		RatePerSecond: c.Provider.RatePerSecond,
		Burst:         c.Provider.Burst,
	}
}
