// Package dashboard holds the front-end independent core of the admin
// dashboard: which actions a row offers, how a backend answer is turned into
// a toast, the modal session and the live log subscription.
package dashboard

import (
	"fmt"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/types"

	"github.com/samber/lo"
)

// ActionKind identifies a user action against the backend
type ActionKind int

const (
	ViewLogs ActionKind = iota
	Start
	Stop
	Restart
	Delete
	EditConfig
	ReAuth

	Authenticate
	Configure
	StartProfile
	RemoveFiles

	CreateProfile
	SaveConfig
	Recreate
	StartAuth
	StopAuth
)

var actionLabels = map[ActionKind]string{
	ViewLogs:      "Logs",
	Start:         "Start",
	Stop:          "Stop",
	Restart:       "Restart",
	Delete:        "Delete",
	EditConfig:    "Edit Config",
	ReAuth:        "Re-Auth",
	Authenticate:  "Authenticate",
	Configure:     "Configure",
	StartProfile:  "Start",
	RemoveFiles:   "Remove Files",
	CreateProfile: "Create Profile",
	SaveConfig:    "Save Configuration",
	Recreate:      "Recreate",
	StartAuth:     "Start Authentication",
	StopAuth:      "Save Credentials",
}

var actionSlugs = map[ActionKind]string{
	ViewLogs:      "logs",
	Start:         "start",
	Stop:          "stop",
	Restart:       "restart",
	Delete:        "delete",
	EditConfig:    "edit-config",
	ReAuth:        "reauth",
	Authenticate:  "authenticate",
	Configure:     "configure",
	StartProfile:  "start-profile",
	RemoveFiles:   "remove-files",
	CreateProfile: "create-profile",
	SaveConfig:    "save-config",
	Recreate:      "recreate",
	StartAuth:     "start-auth",
	StopAuth:      "stop-auth",
}

// Label is the button text of the action
func (k ActionKind) Label() string {
	if l, ok := actionLabels[k]; ok {
		return l
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// String returns the stable identifier used in logs and URLs
func (k ActionKind) String() string {
	if s, ok := actionSlugs[k]; ok {
		return s
	}
	return fmt.Sprintf("action-%d", int(k))
}

// ParseAction resolves an identifier produced by String
func ParseAction(s string) (ActionKind, bool) {
	return lo.FindKey(actionSlugs, s)
}

// Destructive reports whether the action needs a confirmation first
func (k ActionKind) Destructive() bool {
	switch k {
	case Delete, RemoveFiles, Stop, Restart:
		return true
	}
	return false
}

// ConfirmPrompt is the question asked before a destructive action
func ConfirmPrompt(k ActionKind, target string) string {
	switch k {
	case Delete:
		return fmt.Sprintf("Delete profile %q? This removes its container and compose file.", target)
	case RemoveFiles:
		return fmt.Sprintf("Remove all files of profile %q? This cannot be undone.", target)
	case Stop:
		return fmt.Sprintf("Stop %s?", target)
	case Restart:
		return fmt.Sprintf("Restart %s?", target)
	}
	return fmt.Sprintf("%s %s?", k.Label(), target)
}

// IsDefaultProfile reports whether name is the built-in profile, which
// cannot be deleted, reconfigured or re-authenticated from the dashboard
func IsDefaultProfile(name string) bool {
	return name == "" || name == constants.DefaultProfile
}

// ContainerActions lists the buttons of a container card in display order
func ContainerActions(c types.Container) []ActionKind {
	actions := []ActionKind{ViewLogs}
	if c.IsRunning() {
		actions = append(actions, Stop)
	} else {
		actions = append(actions, Start)
	}
	actions = append(actions, Restart)
	if !IsDefaultProfile(c.Profile) {
		actions = append(actions, ReAuth, EditConfig, Delete)
	}
	return actions
}

// PrimaryProfileAction picks the single next step for a profile that has no
// running container
func PrimaryProfileAction(p types.Profile) ActionKind {
	switch {
	case bool(p.HasCompose):
		return StartProfile
	case bool(p.Authenticated):
		return Configure
	default:
		return Authenticate
	}
}

// ProfileActions lists the buttons of an available-profile row
func ProfileActions(p types.Profile) []ActionKind {
	return []ActionKind{PrimaryProfileAction(p), RemoveFiles}
}

// Has reports whether actions contains k
func Has(actions []ActionKind, k ActionKind) bool {
	return lo.Contains(actions, k)
}
