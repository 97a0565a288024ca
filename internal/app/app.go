package app

import (
	"context"

	"gphotos-admin/internal/cli"
	"gphotos-admin/internal/cli/commands"
)

// App represents the main application
type App struct {
	Env *commands.Env
	CLI *cli.Manager
}

// New creates a new application instance
func New() *App {
	env := commands.NewEnv()
	return &App{
		Env: env,
		CLI: cli.New(env),
	}
}

// Run starts the application
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext runs the command line with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	// Show help if no arguments provided
	if len(args) == 0 {
		return a.CLI.ExecuteWithContext(ctx, []string{"--help"})
	}
	return a.CLI.ExecuteWithContext(ctx, args)
}
