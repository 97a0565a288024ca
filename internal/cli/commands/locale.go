package commands

import (
	"fmt"
	"strings"
	"time"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/locale"

	"github.com/spf13/cobra"
)

type extractOptions struct {
	file        string
	url         string
	remote      string
	match       string
	headless    bool
	userDataDir string
	timeout     time.Duration
	lang        string
	json        bool
	noInfo      bool
}

// LocaleCommands creates the photo page locale commands
func LocaleCommands(env *Env) []*cobra.Command {
	var opts extractOptions
	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Detect the date locale of a Google Photos page",
		Long: `Read the metadata line of a Google Photos photo page, classify its date
layout and print the locale's abbreviated month names.

The page is either a saved HTML file (--file) or a live tab, launched with
--url or attached to a running Chrome with --remote ws://host:9222/...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return extractLocale(cmd, env, opts)
		},
	}
	f := extractCmd.Flags()
	f.StringVar(&opts.file, "file", "", "Saved HTML page")
	f.StringVar(&opts.url, "url", "", "Photo page to open in Chrome")
	f.StringVar(&opts.remote, "remote", "", "DevTools websocket URL of a running Chrome")
	f.StringVar(&opts.match, "match", "photos.google.com", "Attach to the tab whose URL contains this (with --remote)")
	f.BoolVar(&opts.headless, "headless", true, "Run the launched Chrome headless")
	f.StringVar(&opts.userDataDir, "user-data-dir", "", "Chrome profile directory, e.g. one signed in to Google")
	f.DurationVar(&opts.timeout, "timeout", time.Minute, "Give up on the browser after this long")
	f.StringVar(&opts.lang, "lang", "", "Runtime language reported for a saved page")
	f.BoolVar(&opts.json, "json", false, "Print the result as JSON")
	f.BoolVar(&opts.noInfo, "no-info", false, "Do not open the info panel when no metadata is visible")
	extractCmd.MarkFlagsMutuallyExclusive("file", "url")
	extractCmd.MarkFlagsMutuallyExclusive("file", "remote")

	monthsCmd := &cobra.Command{
		Use:   "months <locale>",
		Short: "Print the abbreviated month names of a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(locale.MonthsFor(args[0]), ", "))
			return nil
		},
	}

	return []*cobra.Command{extractCmd, monthsCmd}
}

func extractLocale(cmd *cobra.Command, env *Env, opts extractOptions) error {
	ctx := cmd.Context()

	var page locale.Page
	switch {
	case opts.file != "":
		p, err := locale.OpenStaticPage(opts.file)
		if err != nil {
			return err
		}
		if opts.lang != "" {
			p.WithRuntimeLang(opts.lang)
		}
		page = p
	case opts.url != "" || opts.remote != "":
		p, err := locale.NewBrowserPage(ctx, locale.BrowserOptions{
			RemoteURL:   opts.remote,
			URL:         opts.url,
			TargetMatch: opts.match,
			Headless:    opts.headless,
			UserDataDir: opts.userDataDir,
			Timeout:     opts.timeout,
		})
		if err != nil {
			return err
		}
		defer p.Close()
		page = p
	default:
		return errors.InvalidInput("no page", "--file, --url or --remote")
	}

	e := locale.NewExtractor()
	e.InfoDelay = env.Config.Locale.InfoDelay.Duration
	e.FallbackLocale = env.Config.Locale.FallbackLocale
	e.SkipInfo = opts.noInfo

	res := e.Extract(ctx, page)
	if opts.json {
		return printJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Format())
	return nil
}
