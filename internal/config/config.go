package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/xdg"

	"github.com/pelletier/go-toml/v2"
)

// Environment overrides
const (
	EnvServer   = "GPHOTOS_ADMIN_SERVER"
	EnvLogLevel = "GPHOTOS_ADMIN_LOG_LEVEL"
	EnvVNCURL   = "GPHOTOS_ADMIN_VNC_URL"
	EnvConfig   = "GPHOTOS_ADMIN_CONFIG"
)

// Config is the client-side configuration stored in config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Web       WebConfig       `toml:"web"`
	Logging   LoggingConfig   `toml:"logging"`
	Locale    LocaleConfig    `toml:"locale"`

	// path the config was loaded from, empty for defaults
	path string
}

type ServerConfig struct {
	URL     string   `toml:"url"`     // Sync backend base URL
	Timeout Duration `toml:"timeout"` // Per-request timeout, streams excluded
}

type DashboardConfig struct {
	RefreshInterval  Duration `toml:"refresh_interval"`
	SettleDelay      Duration `toml:"settle_delay"`
	ShortSettleDelay Duration `toml:"short_settle_delay"`
	ToastDuration    Duration `toml:"toast_duration"`
	AutoScroll       bool     `toml:"auto_scroll"`
	VNCURL           string   `toml:"vnc_url"`
}

type WebConfig struct {
	Listen      string `toml:"listen"`
	OpenBrowser bool   `toml:"open_browser"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`   // used while the terminal dashboard owns stdout
}

type LocaleConfig struct {
	InfoDelay      Duration `toml:"info_delay"`
	FallbackLocale string   `toml:"fallback_locale"`
}

// Duration is a time.Duration written as "10s" in TOML
type Duration struct {
	time.Duration
}

// D wraps a time.Duration
func D(d time.Duration) Duration {
	return Duration{d}
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     constants.DefaultServerURL,
			Timeout: D(constants.DefaultHTTPClientTimeout),
		},
		Dashboard: DashboardConfig{
			RefreshInterval:  D(constants.DefaultRefreshInterval),
			SettleDelay:      D(constants.DefaultSettleDelay),
			ShortSettleDelay: D(constants.DefaultShortSettleDelay),
			ToastDuration:    D(constants.DefaultToastDuration),
			AutoScroll:       true,
			VNCURL:           constants.DefaultVNCURL,
		},
		Web: WebConfig{
			Listen: constants.DefaultWebListen,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Locale: LocaleConfig{
			InfoDelay:      D(constants.DefaultInfoDelay),
			FallbackLocale: constants.DefaultFallbackLocale,
		},
	}
}

// DefaultPath returns the config file location, honouring GPHOTOS_ADMIN_CONFIG
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	return xdg.ConfigFile()
}

// Load reads the configuration from path, or from DefaultPath when path is
// empty. A missing file yields the defaults. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.ConfigParseError(path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigParseError(path, err)
		}
		cfg.fillDefaults()
	}
	cfg.path = path
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration as TOML
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.InternalError("marshal config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.InternalError("create config directory", err)
	}
	return os.WriteFile(path, data, constants.FilePermissions)
}

// fillDefaults restores zero values left by a partial file
func (c *Config) fillDefaults() {
	d := Default()
	if c.Server.URL == "" {
		c.Server.URL = d.Server.URL
	}
	if c.Server.Timeout.Duration == 0 {
		c.Server.Timeout = d.Server.Timeout
	}
	if c.Dashboard.RefreshInterval.Duration == 0 {
		c.Dashboard.RefreshInterval = d.Dashboard.RefreshInterval
	}
	if c.Dashboard.SettleDelay.Duration == 0 {
		c.Dashboard.SettleDelay = d.Dashboard.SettleDelay
	}
	if c.Dashboard.ShortSettleDelay.Duration == 0 {
		c.Dashboard.ShortSettleDelay = d.Dashboard.ShortSettleDelay
	}
	if c.Dashboard.ToastDuration.Duration == 0 {
		c.Dashboard.ToastDuration = d.Dashboard.ToastDuration
	}
	if c.Dashboard.VNCURL == "" {
		c.Dashboard.VNCURL = d.Dashboard.VNCURL
	}
	if c.Web.Listen == "" {
		c.Web.Listen = d.Web.Listen
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
	if c.Locale.InfoDelay.Duration == 0 {
		c.Locale.InfoDelay = d.Locale.InfoDelay
	}
	if c.Locale.FallbackLocale == "" {
		c.Locale.FallbackLocale = d.Locale.FallbackLocale
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServer); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvVNCURL); v != "" {
		c.Dashboard.VNCURL = v
	}
}

// LogFile returns the configured log file or the default under the XDG state dir
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(xdg.LogsDir(), "gphotos-admin.log")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigInvalid("server.url must be an http(s) URL, got " + c.Server.URL)
	}

	durations := map[string]Duration{
		"server.timeout":               c.Server.Timeout,
		"dashboard.refresh_interval":   c.Dashboard.RefreshInterval,
		"dashboard.settle_delay":       c.Dashboard.SettleDelay,
		"dashboard.short_settle_delay": c.Dashboard.ShortSettleDelay,
		"dashboard.toast_duration":     c.Dashboard.ToastDuration,
	}
	for name, d := range durations {
		if d.Duration <= 0 {
			return errors.ConfigInvalid(name + " must be positive")
		}
	}
	if c.Locale.InfoDelay.Duration < 0 {
		return errors.ConfigInvalid("locale.info_delay cannot be negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.ConfigInvalid("logging.level must be debug, info, warn or error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.ConfigInvalid("logging.format must be text or json")
	}
	return nil
}
