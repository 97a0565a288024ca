package ui

import (
	"time"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/types"
)

type snapshotMsg struct {
	snapshot dashboard.Snapshot
}

// refreshTickMsg drives the periodic re-fetch and re-arms itself
type refreshTickMsg time.Time

// settleMsg asks for a one-off re-fetch after an action
type settleMsg struct{}

type outcomeMsg struct {
	outcome dashboard.Outcome
	target  string
}

type saveMsg struct {
	outcomes []dashboard.Outcome
	profile  string
	editMode bool
}

type logsSnapshotMsg struct {
	containerID string
	lines       []string
	err         error
}

type streamOpenedMsg struct {
	containerID string
	sub         *dashboard.Subscription
	err         error
}

type logLineMsg struct {
	subID string
	line  dashboard.LogLine
}

type streamEndedMsg struct {
	subID string
}

type configLoadedMsg struct {
	profile string
	cfg     types.Configuration
	err     error
}

type foldersMsg struct {
	result *types.BrowseResult
	err    error
}

type logWrittenMsg struct {
	path string
	err  error
}

type browserOpenedMsg struct {
	err error
}
