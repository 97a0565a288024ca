package commands

import (
	"fmt"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/validation"

	"github.com/dustin/go-humanize"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// openURL is swapped in tests
var openURL = browser.OpenURL

// AuthCommands creates the Google login commands
func AuthCommands(env *Env) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Start the login browser of a profile",
		Long: `Start the remote login browser of a profile. Sign in to Google Photos
through the VNC page, then run 'gphotos-admin auth stop' to save the
credentials.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reauth, _ := cmd.Flags().GetBool("reauth")
			open, _ := cmd.Flags().GetBool("open")
			return startAuth(cmd, env, args[0], reauth, open)
		},
	}
	startCmd.Flags().Bool("reauth", false, "Re-authenticate a profile that already has a worker")
	startCmd.Flags().Bool("open", false, "Open the VNC page in the default browser")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Save the credentials and close the login browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := env.Executor().Run(cmd.Context(), dashboard.StopAuth, "")
			return printOutcome(cmd.OutOrStdout(), o)
		},
	}

	return []*cobra.Command{startCmd, stopCmd}
}

func startAuth(cmd *cobra.Command, env *Env, name string, reauth, open bool) error {
	if err := validation.ProfileName(name); err != nil {
		return err
	}
	if reauth && dashboard.IsDefaultProfile(name) {
		return errors.InvalidInput(name, "a non-default profile")
	}
	out := cmd.OutOrStdout()
	o := env.Executor().Run(cmd.Context(), dashboard.AuthStartAction(reauth), name)
	if err := printOutcome(out, o); err != nil {
		return err
	}

	vnc := env.Config.Dashboard.VNCURL
	fmt.Fprintf(out, "Sign in at %s, then run: gphotos-admin auth stop\n", vnc)
	if open {
		if err := openURL(vnc); err != nil {
			logger.WithError(err).Warn("Failed to open browser")
		}
	}
	return nil
}

// BrowseCommand lists directories on the backend host
func BrowseCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "List directories on the backend host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) > 0 {
				path = args[0]
			}
			if err := validation.PhotoDir(path); err != nil {
				return err
			}
			res, err := env.Client.BrowseDirectories(cmd.Context(), path)
			if err != nil {
				return err
			}
			if res.Error != "" {
				return errors.ActionFailed("browse", res.Error)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s files)\n", res.CurrentPath, humanize.Comma(int64(res.FilesCount)))
			if res.ParentPath != "" {
				fmt.Fprintln(out, "  ../")
			}
			for _, d := range res.Directories {
				fmt.Fprintf(out, "  %s/\n", d)
			}
			return nil
		},
	}
}
