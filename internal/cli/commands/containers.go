package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/validation"

	"github.com/spf13/cobra"
)

// ContainerCommands creates the sync worker commands
func ContainerCommands(env *Env) []*cobra.Command {
	commands := []*cobra.Command{}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List sync workers",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return listContainers(cmd, env, output)
		},
	}
	listCmd.Flags().StringP("output", "o", "table", "Output format (table, json)")
	commands = append(commands, listCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show worker counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := env.Client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d  Running: %d  Stopped: %d\n", stats.Total, stats.Running, stats.Stopped)
			return nil
		},
	}
	commands = append(commands, statsCmd)

	for _, k := range []dashboard.ActionKind{dashboard.Start, dashboard.Stop, dashboard.Restart} {
		actionCmd := &cobra.Command{
			Use:   k.String() + " <container-id>",
			Short: k.Label() + " a sync worker",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := validation.ContainerID(args[0]); err != nil {
					return err
				}
				yes, _ := cmd.Flags().GetBool("yes")
				if k.Destructive() && !yes && !confirm(env.In, cmd.OutOrStdout(), dashboard.ConfirmPrompt(k, args[0])) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
				o := env.Executor().Run(cmd.Context(), k, args[0])
				return printOutcome(cmd.OutOrStdout(), o)
			},
		}
		if k.Destructive() {
			actionCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
		}
		commands = append(commands, actionCmd)
	}

	logsCmd := &cobra.Command{
		Use:   "logs <container-id>",
		Short: "Show the logs of a sync worker",
		Long: `Show the current logs of a sync worker. With --follow the live stream is
printed until interrupted. With --download the snapshot is written to
<id>-logs-<timestamp>.txt instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			follow, _ := cmd.Flags().GetBool("follow")
			download, _ := cmd.Flags().GetBool("download")
			raw, _ := cmd.Flags().GetBool("raw")
			dir, _ := cmd.Flags().GetString("dir")
			return containerLogs(cmd, env, args[0], logsOptions{follow: follow, download: download, raw: raw, dir: dir})
		},
	}
	logsCmd.Flags().BoolP("follow", "f", false, "Follow the live log stream")
	logsCmd.Flags().Bool("download", false, "Write the log snapshot to a file")
	logsCmd.Flags().String("dir", ".", "Directory for --download")
	logsCmd.Flags().Bool("raw", false, "Print lines as received, without parsing structured records")
	commands = append(commands, logsCmd)

	return commands
}

func listContainers(cmd *cobra.Command, env *Env, output string) error {
	if err := checkFormat(output, "table", "json"); err != nil {
		return err
	}
	containers, err := env.Client.ListContainers(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if output == "json" {
		return printJSON(out, containers)
	}
	if len(containers) == 0 {
		fmt.Fprintln(out, "No sync workers found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tPROFILE\tSTATUS\tSYNC\tSCHEDULE\tNEXT RUN")
	for _, c := range containers {
		next := orDash(c.NextRun)
		if c.TimeUntil != "" {
			next += " (" + c.TimeUntil + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ShortID(), c.Title(), c.Profile, c.Status, orDash(c.SyncStatus), orDash(c.CronSchedule), next)
	}
	return w.Flush()
}

type logsOptions struct {
	follow   bool
	download bool
	raw      bool
	dir      string
}

func formatLine(raw string, asIs bool) string {
	if asIs {
		return raw
	}
	return dashboard.ParseLogLine(raw).Display()
}

func containerLogs(cmd *cobra.Command, env *Env, id string, opts logsOptions) error {
	if err := validation.ContainerID(id); err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	text, err := env.Client.Logs(ctx, id)
	if err != nil {
		return err
	}
	lines := dashboard.SplitSnapshot(text)

	if opts.download {
		if err := os.MkdirAll(opts.dir, constants.DirPermissions); err != nil {
			return errors.InternalError("create log directory", err)
		}
		path := filepath.Join(opts.dir, dashboard.DownloadFilename(id, env.Now()))
		f, err := os.Create(path)
		if err != nil {
			return errors.InternalError("create log file", err)
		}
		defer f.Close()
		if err := dashboard.WriteLog(f, lines); err != nil {
			return errors.InternalError("write log file", err)
		}
		fmt.Fprintf(out, "Wrote %d lines to %s\n", len(lines), path)
		return nil
	}

	for _, l := range lines {
		fmt.Fprintln(out, formatLine(l, opts.raw))
	}
	if !opts.follow {
		return nil
	}

	sub, err := dashboard.Subscribe(ctx, env.Client, id)
	if err != nil {
		return err
	}
	defer sub.Close()
	for line := range sub.Lines {
		if opts.raw {
			fmt.Fprintln(out, line.Raw)
			continue
		}
		fmt.Fprintln(out, line.Display())
	}
	if ctx.Err() != nil {
		return nil
	}
	return errors.New(errors.ErrStreamClosed, "Log stream ended")
}
