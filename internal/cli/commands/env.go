package commands

import (
	"io"
	"os"
	"time"

	"gphotos-admin/internal/client"
	"gphotos-admin/internal/config"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/logger"
)

// Env carries what every command needs. The root command fills it from the
// global flags before any subcommand runs.
type Env struct {
	// Flag values
	ConfigPath string
	ServerURL  string
	LogLevel   string

	Config *config.Config
	Client *client.Client

	In  io.Reader
	Now func() time.Time
}

// NewEnv creates an empty environment reading from stdin
func NewEnv() *Env {
	return &Env{In: os.Stdin, Now: time.Now}
}

// Load reads the configuration, applies flag overrides, configures logging
// and builds the API client. A pre-filled Config or Client is kept.
func (e *Env) Load() error {
	if e.Config == nil {
		cfg, err := config.Load(e.ConfigPath)
		if err != nil {
			return err
		}
		e.Config = cfg
	}
	if e.ServerURL != "" {
		e.Config.Server.URL = e.ServerURL
	}
	if e.LogLevel != "" {
		e.Config.Logging.Level = e.LogLevel
	}
	if err := e.Config.Validate(); err != nil {
		return err
	}

	logger.SetLevel(e.Config.Logging.Level)
	logger.SetFormat(e.Config.Logging.Format)

	if e.Client == nil {
		c, err := client.New(e.Config.Server.URL,
			client.WithTimeout(e.Config.Server.Timeout.Duration),
			client.WithUserAgent("gphotos-admin/"+Version))
		if err != nil {
			return err
		}
		e.Client = c
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.In == nil {
		e.In = os.Stdin
	}
	return nil
}

// Delays returns the settle delays from the configuration
func (e *Env) Delays() dashboard.Delays {
	return dashboard.Delays{
		Settle:      e.Config.Dashboard.SettleDelay.Duration,
		ShortSettle: e.Config.Dashboard.ShortSettleDelay.Duration,
	}
}

// Executor runs dashboard actions against the backend
func (e *Env) Executor() *dashboard.Executor {
	return dashboard.NewExecutor(e.Client, e.Delays())
}
