package web

import (
	"net/url"
	"time"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/types"
)

// button is one htmx action control
type button struct {
	Label   string
	Method  string // get, post or delete
	URL     string
	Modal   bool // response goes to the modal slot
	Confirm string
	Class   string
}

func pathSeg(s string) string {
	return url.PathEscape(s)
}

func containerButtons(c types.Container) []button {
	id, profile := pathSeg(c.ID), pathSeg(c.Profile)
	actions := dashboard.ContainerActions(c)
	buttons := make([]button, 0, len(actions))
	for _, k := range actions {
		b := button{Label: k.Label(), Class: k.String()}
		switch k {
		case dashboard.ViewLogs:
			b.Method, b.URL, b.Modal = "get", "/ui/modals/logs/"+id, true
		case dashboard.Start, dashboard.Stop, dashboard.Restart:
			b.Method, b.URL = "post", "/ui/containers/"+id+"/"+k.String()
		case dashboard.ReAuth:
			b.Method, b.URL, b.Modal = "get", "/ui/modals/auth/"+profile+"?reauth=true", true
		case dashboard.EditConfig:
			b.Method, b.URL, b.Modal = "get", "/ui/modals/config/"+profile+"?edit=true", true
		case dashboard.Delete:
			b.Method, b.URL = "delete", "/ui/profiles/"+profile
		}
		if k.Destructive() {
			target := c.Title()
			if k == dashboard.Delete {
				target = c.Profile
			}
			b.Confirm = dashboard.ConfirmPrompt(k, target)
		}
		buttons = append(buttons, b)
	}
	return buttons
}

func profileButtons(p types.Profile) []button {
	name := pathSeg(p.Name)
	actions := dashboard.ProfileActions(p)
	buttons := make([]button, 0, len(actions))
	for _, k := range actions {
		b := button{Label: k.Label(), Class: k.String()}
		switch k {
		case dashboard.Authenticate:
			b.Method, b.URL, b.Modal = "get", "/ui/modals/auth/"+name, true
		case dashboard.Configure:
			b.Method, b.URL, b.Modal = "get", "/ui/modals/config/"+name, true
		case dashboard.StartProfile:
			b.Method, b.URL = "post", "/ui/profiles/"+name+"/start"
		case dashboard.RemoveFiles:
			b.Method, b.URL = "delete", "/ui/profiles/"+name+"/files"
			b.Confirm = dashboard.ConfirmPrompt(k, p.Title())
		}
		buttons = append(buttons, b)
	}
	return buttons
}

type pageView struct {
	RefreshSeconds int
	AutoScroll     bool
}

type statsView struct {
	Stats types.Stats
}

type containerView struct {
	types.Container
	Buttons []button
}

type containersView struct {
	Containers []containerView
}

type profileView struct {
	types.Profile
	Buttons []button
}

type profilesView struct {
	Profiles []profileView
}

// outcomeView is the answer to an action: a toast, an optional delayed
// refresh and an optional follow-up request
type outcomeView struct {
	dashboard.Outcome
	RefreshAfter time.Duration
	// FollowUp is posted after FollowUpDelay, e.g. start-profile after a compose write
	FollowUp      string
	FollowUpDelay time.Duration
	// Modal replaces the modal slot; CloseModal empties it
	Modal      string
	ModalData  interface{}
	CloseModal bool
}

type logsView struct {
	ContainerID   string
	ContainerName string
	Lines         []dashboard.LogLine
	Err           error
	AutoScroll    bool
}

type createView struct {
	Name  string
	Error string
}

type configField struct {
	dashboard.ConfigField
	Value string
}

// Input names the HTML control drawn for the field
func (f configField) Input() string {
	switch f.Kind {
	case dashboard.BoolField:
		return "checkbox"
	case dashboard.ChoiceField:
		return "select"
	case dashboard.NumberField:
		return "number"
	}
	return "text"
}

func (f configField) Checked() bool {
	return f.Value == "true"
}

type configView struct {
	ProfileName string
	EditMode    bool
	Fields      []configField
	NextRuns    []time.Time
	Error       string
}

type authView struct {
	ProfileName string
	ReAuth      bool
	Running     bool
	VNCURL      string
}

type foldersView struct {
	Result *types.BrowseResult
	Err    error
}

type folderEntry struct {
	Name string
	Path string
}

func (v foldersView) Entries() []folderEntry {
	if v.Result == nil {
		return nil
	}
	entries := make([]folderEntry, len(v.Result.Directories))
	for i, d := range v.Result.Directories {
		entries[i] = folderEntry{Name: d, Path: joinPath(v.Result.CurrentPath, d)}
	}
	return entries
}

func joinPath(dir, name string) string {
	if len(dir) > 0 && dir[len(dir)-1] == '/' {
		return dir + name
	}
	return dir + "/" + name
}
