package cli

import (
	"gphotos-admin/internal/cli/commands"

	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand(env *commands.Env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gphotos-admin",
		Short: "Administer a photo backup server from the terminal or the browser",
		Long: `gphotos-admin manages the containers and backup profiles of a photo backup
admin server. It offers an interactive terminal dashboard, a web dashboard and
scriptable commands, plus a locale extractor for the photos web app.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[commands.SkipLoad] == "true" {
				return nil
			}
			return env.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&env.ConfigPath, "config", "c", "", "Configuration file (default $XDG_CONFIG_HOME/gphotos-admin/config.toml)")
	flags.StringVarP(&env.ServerURL, "server", "s", "", "Admin server URL, overrides server.url")
	flags.StringVar(&env.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return rootCmd
}
