// Package ui is the terminal front-end of the admin dashboard.
package ui

import (
	"context"
	"time"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

// API is everything the dashboard asks of the sync backend
type API interface {
	dashboard.Backend
	dashboard.SnapshotSource
	dashboard.LogSource

	Logs(ctx context.Context, containerID string) (string, error)
	GetConfig(ctx context.Context, name string) (*types.Configuration, error)
	BrowseDirectories(ctx context.Context, path string) (*types.BrowseResult, error)
}

// Options tunes the dashboard timers and side effects
type Options struct {
	RefreshInterval time.Duration
	Delays          dashboard.Delays
	ToastDuration   time.Duration
	AutoScroll      bool
	VNCURL          string
	// LogDir receives log files written from the viewer
	LogDir  string
	OpenURL func(url string) error
	Now     func() time.Time
}

// DefaultOptions returns the stock timers
func DefaultOptions() Options {
	return Options{
		RefreshInterval: constants.DefaultRefreshInterval,
		Delays:          dashboard.DefaultDelays(),
		ToastDuration:   constants.DefaultToastDuration,
		AutoScroll:      true,
		VNCURL:          constants.DefaultVNCURL,
		LogDir:          ".",
		OpenURL:         browser.OpenURL,
		Now:             time.Now,
	}
}

type section int

const (
	containersSection section = iota
	profilesSection
)

// App is the root bubbletea model
type App struct {
	ctx  context.Context
	api  API
	exec *dashboard.Executor
	opts Options

	keys    keyMap
	logKeys logKeyMap
	help    help.Model
	width   int
	height  int

	snapshot dashboard.Snapshot
	loaded   bool
	section  section
	cursor   [2]int

	session    dashboard.Session
	toast      components.ToastModel
	confirm    components.ConfirmModel
	createForm components.FormModel
	configForm components.FormModel
	// configReady is set once the editor holds the fetched configuration
	configReady  bool
	folders      *types.BrowseResult
	folderCursor int
	logLines     []dashboard.LogLine
	logView      viewport.Model
}

// NewApp creates the dashboard model. Zero option fields take their defaults.
func NewApp(ctx context.Context, api API, opts Options) App {
	opts = withDefaults(opts)
	exec := dashboard.NewExecutor(api, opts.Delays)
	return App{
		ctx:     ctx,
		api:     api,
		exec:    exec,
		opts:    opts,
		keys:    defaultKeyMap,
		logKeys: defaultLogKeyMap,
		help:    help.New(),
		toast:   components.NewToast(opts.ToastDuration),
		logView: viewport.New(80, 20),
		width:   80,
		height:  24,
	}
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = def.RefreshInterval
	}
	if opts.Delays == (dashboard.Delays{}) {
		opts.Delays = def.Delays
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = def.ToastDuration
	}
	if opts.VNCURL == "" {
		opts.VNCURL = def.VNCURL
	}
	if opts.LogDir == "" {
		opts.LogDir = def.LogDir
	}
	if opts.OpenURL == nil {
		opts.OpenURL = def.OpenURL
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return opts
}

// Run starts the dashboard on the terminal and blocks until it quits
func Run(ctx context.Context, api API, opts Options) error {
	p := tea.NewProgram(NewApp(ctx, api, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if app, ok := final.(App); ok {
		app.Destroy()
	}
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(fetchSnapshot(a.ctx, a.api), refreshTick(a.opts.RefreshInterval))
}

// Destroy releases the live log stream
func (a App) Destroy() {
	a.session.CloseAll()
}

func (a App) selectedContainer() (types.Container, bool) {
	i := a.cursor[containersSection]
	if a.section != containersSection || i < 0 || i >= len(a.snapshot.Containers) {
		return types.Container{}, false
	}
	return a.snapshot.Containers[i], true
}

func (a App) selectedProfile() (types.Profile, bool) {
	i := a.cursor[profilesSection]
	if a.section != profilesSection || i < 0 || i >= len(a.snapshot.Profiles) {
		return types.Profile{}, false
	}
	return a.snapshot.Profiles[i], true
}

func (a App) rows(s section) int {
	if s == containersSection {
		return len(a.snapshot.Containers)
	}
	return len(a.snapshot.Profiles)
}

// clampCursors keeps the selection inside lists that shrank on refresh
func (a *App) clampCursors() {
	for _, s := range []section{containersSection, profilesSection} {
		n := a.rows(s)
		if a.cursor[s] >= n {
			a.cursor[s] = n - 1
		}
		if a.cursor[s] < 0 {
			a.cursor[s] = 0
		}
	}
}
