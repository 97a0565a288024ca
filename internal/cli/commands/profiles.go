package commands

import (
	"fmt"

	"gphotos-admin/internal/config"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/validation"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

// ProfileCommands creates the profile management commands
func ProfileCommands(env *Env) []*cobra.Command {
	commands := []*cobra.Command{}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List profiles that have no sync worker yet",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return listProfiles(cmd, env, output)
		},
	}
	listCmd.Flags().StringP("output", "o", "table", "Output format (table, json)")
	commands = append(commands, listCmd)

	createCmd := &cobra.Command{
		Use:   "create <display-name>",
		Short: "Create a new profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ProfileDisplayName(args[0]); err != nil {
				return err
			}
			o := env.Executor().Run(cmd.Context(), dashboard.CreateProfile, args[0])
			if err := printOutcome(cmd.OutOrStdout(), o); err != nil {
				return err
			}
			if o.Result != nil && o.Result.ProfileName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Next: gphotos-admin auth start %s\n", o.Result.ProfileName)
			}
			return nil
		},
	}
	commands = append(commands, createCmd)

	simple := []struct {
		use   string
		short string
		kind  dashboard.ActionKind
	}{
		{"start", "Start the sync worker of a configured profile", dashboard.StartProfile},
		{"recreate", "Recreate the sync worker of a profile with its current configuration", dashboard.Recreate},
	}
	for _, s := range simple {
		commands = append(commands, &cobra.Command{
			Use:   s.use + " <name>",
			Short: s.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := validation.ProfileName(args[0]); err != nil {
					return err
				}
				return printOutcome(cmd.OutOrStdout(), env.Executor().Run(cmd.Context(), s.kind, args[0]))
			},
		})
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile's worker and compose file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return destructiveProfileAction(cmd, env, dashboard.Delete, args[0], yes)
		},
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	commands = append(commands, deleteCmd)

	purgeCmd := &cobra.Command{
		Use:   "purge <name>",
		Short: "Remove every file of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return destructiveProfileAction(cmd, env, dashboard.RemoveFiles, args[0], yes)
		},
	}
	purgeCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	commands = append(commands, purgeCmd)

	checkAuthCmd := &cobra.Command{
		Use:   "check-auth <name>",
		Short: "Check whether a profile holds Google credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ProfileName(args[0]); err != nil {
				return err
			}
			status, err := env.Client.CheckAuth(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "not authenticated"
			if status.Authenticated {
				state = "authenticated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], state)
			if status.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), status.Message)
			}
			return nil
		},
	}
	commands = append(commands, checkAuthCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Export or import a profile's worker configuration",
	}
	for _, c := range profileConfigCommands(env) {
		configCmd.AddCommand(c)
	}
	commands = append(commands, configCmd)

	return commands
}

func listProfiles(cmd *cobra.Command, env *Env, output string) error {
	if err := checkFormat(output, "table", "json"); err != nil {
		return err
	}
	profiles, err := env.Client.AvailableProfiles(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if output == "json" {
		return printJSON(out, profiles)
	}
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles without a sync worker")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tAUTHENTICATED\tCONFIGURED\tNEXT STEP")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, orDash(p.DisplayName),
			yesNo(bool(p.Authenticated)), yesNo(bool(p.HasCompose)), dashboard.PrimaryProfileAction(p).Label())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, english.Plural(len(profiles), "profile", ""))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func destructiveProfileAction(cmd *cobra.Command, env *Env, k dashboard.ActionKind, name string, yes bool) error {
	if err := validation.ProfileName(name); err != nil {
		return err
	}
	if dashboard.IsDefaultProfile(name) {
		return errors.InvalidInput(name, "a non-default profile")
	}
	if !yes && !confirm(env.In, cmd.OutOrStdout(), dashboard.ConfirmPrompt(k, name)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return nil
	}
	return printOutcome(cmd.OutOrStdout(), env.Executor().Run(cmd.Context(), k, name))
}

func profileConfigCommands(env *Env) []*cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a profile's worker configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			format, err := config.ParseFormat(output)
			if err != nil {
				return err
			}
			if err := validation.ProfileName(args[0]); err != nil {
				return err
			}
			cfg, err := env.Client.GetConfig(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := config.EncodeProfile(*cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	getCmd.Flags().StringP("output", "o", "yaml", "Output format (yaml, toml, json)")

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Write a profile's worker configuration from a file",
		Long: `Write a profile's worker configuration from a YAML, TOML or JSON file.
Fields missing from the file keep their current value. With --start the
worker of a new profile is started once the backend settled; with
--recreate the worker of an existing profile is recreated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			start, _ := cmd.Flags().GetBool("start")
			recreate, _ := cmd.Flags().GetBool("recreate")
			return setProfileConfig(cmd, env, args[0], file, start, recreate)
		},
	}
	setCmd.Flags().StringP("file", "f", "", "Configuration file (.yaml, .toml or .json)")
	setCmd.Flags().Bool("start", false, "Start the worker after saving")
	setCmd.Flags().Bool("recreate", false, "Recreate the worker after saving")
	_ = setCmd.MarkFlagRequired("file")
	setCmd.MarkFlagsMutuallyExclusive("start", "recreate")

	return []*cobra.Command{getCmd, setCmd}
}

func setProfileConfig(cmd *cobra.Command, env *Env, name, file string, start, recreate bool) error {
	if err := validation.ProfileName(name); err != nil {
		return err
	}
	ctx := cmd.Context()

	base := types.DefaultConfiguration()
	current, err := env.Client.GetConfig(ctx, name)
	switch {
	case err == nil:
		base = *current
	case !errors.IsNotFound(err):
		return err
	}

	cfg, err := config.LoadProfileFile(file, base)
	if err != nil {
		return err
	}
	if err := validation.Configuration(cfg); err != nil {
		return err
	}

	exec := env.Executor()
	var outcomes []dashboard.Outcome
	if start || recreate {
		outcomes = exec.Save(ctx, name, cfg, recreate)
	} else {
		res, err := env.Client.CreateCompose(ctx, name, cfg)
		outcomes = append(outcomes, exec.Delays.Interpret(dashboard.SaveConfig, res, err))
	}
	for _, o := range outcomes {
		if err := printOutcome(cmd.OutOrStdout(), o); err != nil {
			return err
		}
	}
	return nil
}
