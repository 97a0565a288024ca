package commands

import (
	"fmt"
	"net"

	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/ui"
	"gphotos-admin/internal/web"

	"github.com/spf13/cobra"
)

// DashboardCommands creates the terminal and browser dashboard commands
func DashboardCommands(env *Env) []*cobra.Command {
	dashCmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Open the terminal dashboard",
		Aliases: []string{"ui", "tui"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logDir, _ := cmd.Flags().GetString("log-dir")
			return runDashboard(cmd, env, logDir)
		},
	}
	dashCmd.Flags().String("log-dir", ".", "Directory for log files saved from the log viewer")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			open, _ := cmd.Flags().GetBool("open")
			if !cmd.Flags().Changed("open") {
				open = env.Config.Web.OpenBrowser
			}
			return runServe(cmd, env, listen, open)
		},
	}
	serveCmd.Flags().StringP("listen", "l", "", "Listen address (default from config)")
	serveCmd.Flags().Bool("open", false, "Open the dashboard in the default browser")

	return []*cobra.Command{dashCmd, serveCmd}
}

func runDashboard(cmd *cobra.Command, env *Env, logDir string) error {
	// the dashboard owns the terminal
	restore, err := logger.ToFile(env.Config.LogFile())
	if err != nil {
		return err
	}
	defer func() {
		if err := restore(); err != nil {
			logger.WithError(err).Warn("Failed to close log file")
		}
	}()

	d := env.Config.Dashboard
	return ui.Run(cmd.Context(), env.Client, ui.Options{
		RefreshInterval: d.RefreshInterval.Duration,
		Delays:          env.Delays(),
		ToastDuration:   d.ToastDuration.Duration,
		AutoScroll:      d.AutoScroll,
		VNCURL:          d.VNCURL,
		LogDir:          logDir,
		OpenURL:         openURL,
		Now:             env.Now,
	})
}

func runServe(cmd *cobra.Command, env *Env, listen string, open bool) error {
	cfg := web.DefaultConfig()
	cfg.Listen = env.Config.Web.Listen
	if listen != "" {
		cfg.Listen = listen
	}
	d := env.Config.Dashboard
	cfg.RefreshInterval = d.RefreshInterval.Duration
	cfg.Delays = env.Delays()
	cfg.AutoScroll = d.AutoScroll
	cfg.VNCURL = d.VNCURL

	srv, err := web.New(cfg, env.Client)
	if err != nil {
		return err
	}
	return srv.Start(cmd.Context(), func(addr string) {
		url := dashboardURL(addr)
		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard running at %s\n", url)
		if open {
			if err := openURL(url); err != nil {
				logger.WithError(err).Warn("Failed to open browser")
			}
		}
	})
}

// dashboardURL turns a bound address into a URL a browser can open
func dashboardURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
