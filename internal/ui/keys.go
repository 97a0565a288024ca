package ui

import (
	"gphotos-admin/internal/dashboard"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Section      key.Binding
	Logs         key.Binding
	StartStop    key.Binding
	Restart      key.Binding
	EditConfig   key.Binding
	Auth         key.Binding
	Configure    key.Binding
	StartProfile key.Binding
	Delete       key.Binding
	RemoveFiles  key.Binding
	New          key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var defaultKeyMap = keyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Section:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
	Logs:         key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter/l", "logs")),
	StartStop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop")),
	Restart:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	EditConfig:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit config")),
	Auth:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "authenticate")),
	Configure:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "configure")),
	StartProfile: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "start profile")),
	Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	RemoveFiles:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove files")),
	New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new profile")),
	Refresh:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Section, k.Logs, k.StartStop, k.New, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Section, k.Logs},
		{k.StartStop, k.Restart, k.EditConfig, k.Auth, k.Delete},
		{k.Configure, k.StartProfile, k.RemoveFiles, k.New},
		{k.Refresh, k.Help, k.Quit},
	}
}

// actionKeys maps row actions to the key that triggers them
var actionKeys = map[dashboard.ActionKind]string{
	dashboard.ViewLogs:     "enter",
	dashboard.Start:        "s",
	dashboard.Stop:         "s",
	dashboard.Restart:      "r",
	dashboard.ReAuth:       "a",
	dashboard.EditConfig:   "e",
	dashboard.Delete:       "d",
	dashboard.Authenticate: "a",
	dashboard.Configure:    "c",
	dashboard.StartProfile: "p",
	dashboard.RemoveFiles:  "x",
}

type logKeyMap struct {
	AutoScroll key.Binding
	Download   key.Binding
	Close      key.Binding
}

var defaultLogKeyMap = logKeyMap{
	AutoScroll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-scroll")),
	Download:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save to file")),
	Close:      key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
}
