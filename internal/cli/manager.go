package cli

import (
	"context"

	"gphotos-admin/internal/cli/commands"

	"github.com/spf13/cobra"
)

// Manager handles CLI operations
type Manager struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// New creates a new CLI manager with every command registered
func New(env *commands.Env) *Manager {
	if env == nil {
		env = commands.NewEnv()
	}
	m := &Manager{env: env}
	m.rootCmd = createRootCommand(env)
	m.setupCommands()
	return m
}

// Root returns the root command
func (m *Manager) Root() *cobra.Command {
	return m.rootCmd
}

// Execute executes the CLI with the given arguments
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	containerCmd := &cobra.Command{
		Use:     "containers",
		Short:   "Container management commands",
		Aliases: []string{"container", "c"},
	}
	containerCmd.AddCommand(commands.ContainerCommands(m.env)...)
	m.rootCmd.AddCommand(containerCmd)

	profileCmd := &cobra.Command{
		Use:     "profiles",
		Short:   "Backup profile commands",
		Aliases: []string{"profile", "p"},
	}
	profileCmd.AddCommand(commands.ProfileCommands(m.env)...)
	m.rootCmd.AddCommand(profileCmd)

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign a profile in through the login browser",
	}
	authCmd.AddCommand(commands.AuthCommands(m.env)...)
	m.rootCmd.AddCommand(authCmd)

	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Local configuration commands",
		Aliases: []string{"cfg"},
	}
	configCmd.AddCommand(commands.ConfigCommands(m.env)...)
	m.rootCmd.AddCommand(configCmd)

	localeCmd := &cobra.Command{
		Use:   "locale",
		Short: "Extract locale settings from the photos web app",
	}
	localeCmd.AddCommand(commands.LocaleCommands(m.env)...)
	m.rootCmd.AddCommand(localeCmd)

	m.rootCmd.AddCommand(commands.BrowseCommand(m.env))
	m.rootCmd.AddCommand(commands.DashboardCommands(m.env)...)
	m.rootCmd.AddCommand(commands.VersionCommand())
}
