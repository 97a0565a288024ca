package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

func fetchSnapshot(ctx context.Context, api dashboard.SnapshotSource) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snapshot: dashboard.FetchSnapshot(ctx, api)}
	}
}

func refreshTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func settle(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return settleMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return settleMsg{}
	})
}

func runAction(ctx context.Context, exec *dashboard.Executor, k dashboard.ActionKind, target string) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: exec.Run(ctx, k, target), target: target}
	}
}

func saveConfig(ctx context.Context, exec *dashboard.Executor, profile string, cfg types.Configuration, editMode bool) tea.Cmd {
	return func() tea.Msg {
		return saveMsg{
			outcomes: exec.Save(ctx, profile, cfg, editMode),
			profile:  profile,
			editMode: editMode,
		}
	}
}

func loadLogs(ctx context.Context, api API, containerID string) tea.Cmd {
	return func() tea.Msg {
		text, err := api.Logs(ctx, containerID)
		return logsSnapshotMsg{
			containerID: containerID,
			lines:       dashboard.SplitSnapshot(text),
			err:         err,
		}
	}
}

func openStream(ctx context.Context, api API, containerID string) tea.Cmd {
	return func() tea.Msg {
		sub, err := dashboard.Subscribe(ctx, api, containerID)
		return streamOpenedMsg{containerID: containerID, sub: sub, err: err}
	}
}

// waitForLogs delivers the next line of a subscription
func waitForLogs(sub *dashboard.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-sub.Lines
		if !ok {
			return streamEndedMsg{subID: sub.ID}
		}
		return logLineMsg{subID: sub.ID, line: line}
	}
}

// loadConfig fetches a profile's configuration. A profile without a compose
// file yet starts from the defaults.
func loadConfig(ctx context.Context, api API, profile string, editMode bool) tea.Cmd {
	return func() tea.Msg {
		cfg, err := api.GetConfig(ctx, profile)
		if err != nil {
			if !editMode && errors.IsNotFound(err) {
				return configLoadedMsg{profile: profile, cfg: types.DefaultConfiguration()}
			}
			return configLoadedMsg{profile: profile, err: err}
		}
		return configLoadedMsg{profile: profile, cfg: *cfg}
	}
}

func browse(ctx context.Context, api API, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := api.BrowseDirectories(ctx, path)
		if err == nil && res.Error != "" {
			err = errors.ActionFailed("browse", res.Error)
		}
		return foldersMsg{result: res, err: err}
	}
}

func writeLog(dir, containerID string, lines []dashboard.LogLine, now time.Time) tea.Cmd {
	raw := lo.Map(lines, func(l dashboard.LogLine, _ int) string { return l.Raw })
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return logWrittenMsg{err: err}
		}
		path := filepath.Join(dir, dashboard.DownloadFilename(containerID, now))
		f, err := os.Create(path)
		if err != nil {
			return logWrittenMsg{err: err}
		}
		defer f.Close()
		if err := dashboard.WriteLog(f, raw); err != nil {
			return logWrittenMsg{err: err}
		}
		return logWrittenMsg{path: path}
	}
}

func openURL(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg{err: open(url)}
	}
}
