package commands

import (
	"fmt"
	"os"

	"gphotos-admin/internal/config"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// SkipLoad marks commands that run without loading the configuration
const SkipLoad = "skip-load"

// ConfigCommands creates configuration management commands
func ConfigCommands(env *Env) []*cobra.Command {
	commands := []*cobra.Command{}

	// gphotos-admin config init
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Annotations: map[string]string{SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return initConfig(cmd, env, force)
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration")
	commands = append(commands, initCmd)

	// gphotos-admin config show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := toml.Marshal(env.Config)
			if err != nil {
				return errors.InternalError("marshal config", err)
			}
			out := cmd.OutOrStdout()
			if p := env.Config.Path(); p != "" {
				fmt.Fprintf(out, "# %s\n", p)
			} else {
				fmt.Fprintln(out, "# defaults (no configuration file)")
			}
			_, err = out.Write(data)
			return err
		},
	}
	commands = append(commands, showCmd)

	// gphotos-admin config path
	pathCmd := &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file location",
		Annotations: map[string]string{SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(env)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	commands = append(commands, pathCmd)

	return commands
}

func configPath(env *Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", errors.InternalError("resolve config path", err)
	}
	return path, nil
}

func initConfig(cmd *cobra.Command, env *Env, force bool) error {
	path, err := configPath(env)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewWithDetails(errors.ErrConfigInvalid,
			"Configuration already exists", path+" (use --force to overwrite)")
	}

	cfg := config.Default()
	if env.ServerURL != "" {
		cfg.Server.URL = env.ServerURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	logger.WithField("path", path).Debug("Configuration written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
