package ui

import (
	"strings"

	"gphotos-admin/internal/constants"
	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/logger"
	"gphotos-admin/internal/ui/components"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	createFormID = "create"
	configFormID = "config"
)

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.logView.Width = max(msg.Width-6, 20)
		a.logView.Height = max(msg.Height-10, 3)
		return a, nil

	case snapshotMsg:
		a.snapshot = msg.snapshot.ApplyTo(a.snapshot)
		a.loaded = true
		a.clampCursors()
		return a, nil

	case refreshTickMsg:
		return a, tea.Batch(fetchSnapshot(a.ctx, a.api), refreshTick(a.opts.RefreshInterval))

	case settleMsg:
		return a, fetchSnapshot(a.ctx, a.api)

	case components.ToastExpiredMsg:
		a.toast = a.toast.Update(msg)
		return a, nil

	case outcomeMsg:
		return a.handleOutcome(msg)

	case saveMsg:
		return a.handleSave(msg)

	case logsSnapshotMsg:
		if !a.session.Logs.Open || a.session.Logs.ContainerID != msg.containerID {
			return a, nil
		}
		// the live stream is attached once the snapshot is shown
		stream := openStream(a.ctx, a.api, msg.containerID)
		if msg.err != nil {
			var toast tea.Cmd
			a, toast = a.notifyError("Could not load logs", msg.err)
			return a, tea.Batch(toast, stream)
		}
		a.logLines = make([]dashboard.LogLine, 0, len(msg.lines))
		for _, raw := range msg.lines {
			a.logLines = append(a.logLines, dashboard.ParseLogLine(raw))
		}
		a.syncLogView()
		return a, stream

	case streamOpenedMsg:
		if msg.err != nil {
			if a.session.Logs.Open && a.session.Logs.ContainerID == msg.containerID {
				return a.notifyError("Live logs unavailable", msg.err)
			}
			return a, nil
		}
		if !a.session.AttachStream(msg.sub) {
			return a, nil
		}
		return a, waitForLogs(msg.sub)

	case logLineMsg:
		if !a.session.CurrentStream(msg.subID) {
			return a, nil
		}
		a.logLines = append(a.logLines, msg.line)
		if over := len(a.logLines) - constants.MaxLogLines; over > 0 {
			a.logLines = a.logLines[over:]
		}
		a.syncLogView()
		return a, waitForLogs(a.session.Logs.Stream)

	case streamEndedMsg:
		if a.session.CurrentStream(msg.subID) {
			logger.WithField("container", a.session.Logs.ContainerID).Debug("Log stream ended")
		}
		return a, nil

	case configLoadedMsg:
		if !a.session.Config.Open || a.session.Config.ProfileName != msg.profile {
			return a, nil
		}
		if msg.err != nil {
			a.session.CloseConfig()
			return a.notifyError("Could not load configuration", msg.err)
		}
		a.configForm = newConfigForm(msg.profile, a.session.Config.EditMode, dashboard.ConfigValues(msg.cfg), a.width)
		a.configReady = true
		return a, a.configForm.Init()

	case foldersMsg:
		if !a.session.Folders.Open {
			return a, nil
		}
		if msg.err != nil {
			return a.notifyError("Could not browse folders", msg.err)
		}
		a.folders = msg.result
		a.folderCursor = 0
		a.session.Folders.Path = msg.result.CurrentPath
		return a, nil

	case logWrittenMsg:
		if msg.err != nil {
			return a.notifyError("Could not write logs", msg.err)
		}
		var cmd tea.Cmd
		a.toast, cmd = a.toast.Show(components.ToastSuccess, "Logs written to "+msg.path)
		return a, cmd

	case browserOpenedMsg:
		if msg.err != nil {
			return a.notifyError("Could not open browser", msg.err)
		}
		return a, nil

	case components.ConfirmedMsg:
		pending := a.session.CloseConfirm()
		if msg.Result != components.ConfirmYes || !pending.Open {
			return a, nil
		}
		return a, runAction(a.ctx, a.exec, pending.Action, pending.Target)

	case components.FormSubmittedMsg:
		return a.handleSubmit(msg)

	case components.FormCancelledMsg:
		switch msg.FormID {
		case createFormID:
			a.session.CloseCreate()
		case configFormID:
			a.closeConfig()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.forward(msg)
}

// forward hands non-key messages, such as cursor blinks, to the open form
func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.session.Active() {
	case dashboard.CreateModal:
		a.createForm, cmd = a.createForm.Update(msg)
	case dashboard.ConfigModal:
		if a.configReady {
			a.configForm, cmd = a.configForm.Update(msg)
		}
	}
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.Destroy()
		return a, tea.Quit
	}

	switch a.session.Active() {
	case dashboard.ConfirmModal:
		var cmd tea.Cmd
		a.confirm, cmd = a.confirm.Update(msg)
		return a, cmd
	case dashboard.FoldersModal:
		return a.foldersKey(msg)
	case dashboard.LogsModal:
		return a.logsKey(msg)
	case dashboard.ConfigModal:
		return a.configKey(msg)
	case dashboard.AuthModal:
		return a.authKey(msg)
	case dashboard.CreateModal:
		var cmd tea.Cmd
		a.createForm, cmd = a.createForm.Update(msg)
		return a, cmd
	}
	return a.listKey(msg)
}

func (a App) listKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.Destroy()
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(msg, a.keys.Section):
		a.section = 1 - a.section
		return a, nil
	case key.Matches(msg, a.keys.Up):
		if a.cursor[a.section] > 0 {
			a.cursor[a.section]--
		}
		return a, nil
	case key.Matches(msg, a.keys.Down):
		if a.cursor[a.section] < a.rows(a.section)-1 {
			a.cursor[a.section]++
		}
		return a, nil
	case key.Matches(msg, a.keys.Refresh):
		return a, fetchSnapshot(a.ctx, a.api)
	case key.Matches(msg, a.keys.New):
		a.session.OpenCreate()
		a.createForm = newCreateForm(a.width)
		return a, a.createForm.Init()
	}

	if c, ok := a.selectedContainer(); ok {
		return a.containerKey(msg, c.ID, c.Title(), c.Profile, dashboard.ContainerActions(c))
	}
	if p, ok := a.selectedProfile(); ok {
		return a.profileKey(msg, p.Name, p.Title(), dashboard.ProfileActions(p))
	}
	return a, nil
}

func (a App) containerKey(msg tea.KeyMsg, id, title, profile string, actions []dashboard.ActionKind) (tea.Model, tea.Cmd) {
	var k dashboard.ActionKind
	switch {
	case key.Matches(msg, a.keys.Logs):
		k = dashboard.ViewLogs
	case key.Matches(msg, a.keys.StartStop):
		k = dashboard.Start
		if dashboard.Has(actions, dashboard.Stop) {
			k = dashboard.Stop
		}
	case key.Matches(msg, a.keys.Restart):
		k = dashboard.Restart
	case key.Matches(msg, a.keys.EditConfig):
		k = dashboard.EditConfig
	case key.Matches(msg, a.keys.Auth):
		k = dashboard.ReAuth
	case key.Matches(msg, a.keys.Delete):
		k = dashboard.Delete
	default:
		return a, nil
	}
	if !dashboard.Has(actions, k) {
		return a, nil
	}

	switch k {
	case dashboard.ViewLogs:
		return a.openLogs(id, title)
	case dashboard.EditConfig:
		return a.openConfig(profile, true)
	case dashboard.ReAuth:
		a.session.OpenAuth(profile, true)
		return a, nil
	case dashboard.Delete:
		return a.ask(k, profile, profile)
	case dashboard.Stop, dashboard.Restart:
		return a.ask(k, id, title)
	}
	return a, runAction(a.ctx, a.exec, k, id)
}

func (a App) profileKey(msg tea.KeyMsg, name, title string, actions []dashboard.ActionKind) (tea.Model, tea.Cmd) {
	var k dashboard.ActionKind
	switch {
	case key.Matches(msg, a.keys.Logs):
		k = actions[0]
	case key.Matches(msg, a.keys.Auth):
		k = dashboard.Authenticate
	case key.Matches(msg, a.keys.Configure):
		k = dashboard.Configure
	case key.Matches(msg, a.keys.StartProfile):
		k = dashboard.StartProfile
	case key.Matches(msg, a.keys.RemoveFiles):
		k = dashboard.RemoveFiles
	default:
		return a, nil
	}
	if !dashboard.Has(actions, k) {
		return a, nil
	}

	switch k {
	case dashboard.Authenticate:
		a.session.OpenAuth(name, false)
		return a, nil
	case dashboard.Configure:
		return a.openConfig(name, false)
	case dashboard.RemoveFiles:
		return a.ask(k, name, title)
	}
	return a, runAction(a.ctx, a.exec, k, name)
}

func (a App) ask(k dashboard.ActionKind, target, label string) (tea.Model, tea.Cmd) {
	a.session.AskConfirm(k, target, label)
	a.confirm = components.NewConfirm(a.session.Confirm.Prompt, components.WithLabels(k.Label(), "Cancel"))
	return a, nil
}

func (a App) openLogs(id, title string) (tea.Model, tea.Cmd) {
	a.session.OpenLogs(id, title, a.opts.AutoScroll)
	a.logLines = nil
	a.syncLogView()
	return a, loadLogs(a.ctx, a.api, id)
}

func (a App) openConfig(profile string, editMode bool) (tea.Model, tea.Cmd) {
	a.session.OpenConfig(profile, editMode)
	a.configReady = false
	return a, loadConfig(a.ctx, a.api, profile, editMode)
}

func (a *App) closeConfig() {
	a.session.CloseConfig()
	a.session.CloseFolders()
	a.configReady = false
}

func (a App) logsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.logKeys.Close):
		a.session.CloseLogs()
		a.logLines = nil
		return a, nil
	case key.Matches(msg, a.logKeys.AutoScroll):
		if a.session.ToggleAutoScroll() {
			a.logView.GotoBottom()
		}
		return a, nil
	case key.Matches(msg, a.logKeys.Download):
		return a, writeLog(a.opts.LogDir, a.session.Logs.ContainerID, a.logLines, a.opts.Now())
	}

	var cmd tea.Cmd
	a.logView, cmd = a.logView.Update(msg)
	return a, cmd
}

// syncLogView re-renders the viewer content and follows the tail when
// auto-scroll is on
func (a *App) syncLogView() {
	rendered := make([]string, len(a.logLines))
	for i, l := range a.logLines {
		rendered[i] = renderLogLine(l)
	}
	a.logView.SetContent(strings.Join(rendered, "\n"))
	if a.session.Logs.AutoScroll {
		a.logView.GotoBottom()
	}
}

func (a App) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.configReady {
		if msg.String() == "esc" {
			a.closeConfig()
		}
		return a, nil
	}
	if msg.String() == "ctrl+f" {
		start := a.configForm.Value("photo_dir")
		if start == "" {
			start = "/"
		}
		a.configForm.Focus("photo_dir")
		a.session.OpenFolders(start)
		a.folders = nil
		return a, browse(a.ctx, a.api, start)
	}
	var cmd tea.Cmd
	a.configForm, cmd = a.configForm.Update(msg)
	return a, cmd
}

func (a App) authKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	auth := a.session.Auth
	switch msg.String() {
	case "esc":
		a.session.CloseAuth()
		return a, nil
	case "enter":
		return a, runAction(a.ctx, a.exec, dashboard.AuthStartAction(auth.ReAuth), auth.ProfileName)
	case "o":
		return a, openURL(a.opts.OpenURL, a.opts.VNCURL)
	case "ctrl+s":
		return a, runAction(a.ctx, a.exec, dashboard.StopAuth, auth.ProfileName)
	}
	return a, nil
}

func (a App) foldersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.session.CloseFolders()
		return a, nil
	case "up", "k":
		if a.folderCursor > 0 {
			a.folderCursor--
		}
	case "down", "j":
		if a.folders != nil && a.folderCursor < len(a.folders.Directories)-1 {
			a.folderCursor++
		}
	case "enter":
		if a.folders != nil && a.folderCursor < len(a.folders.Directories) {
			return a, browse(a.ctx, a.api, joinPath(a.folders.CurrentPath, a.folders.Directories[a.folderCursor]))
		}
	case "backspace":
		if a.folders != nil && a.folders.HasParent() {
			return a, browse(a.ctx, a.api, a.folders.ParentPath)
		}
	case "s":
		a.configForm.SetValue("photo_dir", a.session.Folders.Path)
		a.session.CloseFolders()
	}
	return a, nil
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func (a App) handleSubmit(msg components.FormSubmittedMsg) (tea.Model, tea.Cmd) {
	switch msg.FormID {
	case createFormID:
		return a, runAction(a.ctx, a.exec, dashboard.CreateProfile, strings.TrimSpace(msg.Values["name"]))
	case configFormID:
		cfg, err := dashboard.ParseConfig(msg.Values)
		if err != nil {
			return a.notifyError("Invalid configuration", err)
		}
		state := a.session.Config
		return a, saveConfig(a.ctx, a.exec, state.ProfileName, cfg, state.EditMode)
	}
	return a, nil
}

func (a App) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	o := msg.outcome
	a, cmd := a.notify(o)
	cmds := []tea.Cmd{cmd}
	if o.Refetch {
		cmds = append(cmds, settle(o.Delay))
	}
	if !o.OK() {
		return a, tea.Batch(cmds...)
	}

	switch o.Action {
	case dashboard.CreateProfile:
		a.session.CloseCreate()
		if o.Result != nil && o.Result.ProfileName != "" {
			a.session.OpenAuth(o.Result.ProfileName, false)
		}
	case dashboard.StartAuth, dashboard.ReAuth, dashboard.Authenticate:
		if a.session.Auth.Open && a.session.Auth.ProfileName == msg.target {
			a.session.Auth.Running = true
		}
	case dashboard.StopAuth:
		auth := a.session.Auth
		a.session.CloseAuth()
		if auth.Open && dashboard.AuthConfirmFlow(auth.ReAuth) == dashboard.AfterAuthConfigure {
			model, load := a.openConfig(auth.ProfileName, false)
			return model, tea.Batch(append(cmds, load)...)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleSave(msg saveMsg) (tea.Model, tea.Cmd) {
	final := dashboard.Final(msg.outcomes)
	a, cmd := a.notify(final)
	cmds := []tea.Cmd{cmd}
	if final.Refetch {
		cmds = append(cmds, settle(final.Delay))
	}
	if final.OK() && a.session.Config.ProfileName == msg.profile {
		a.closeConfig()
	}
	return a, tea.Batch(cmds...)
}

func (a App) notify(o dashboard.Outcome) (App, tea.Cmd) {
	level := components.ToastSuccess
	switch o.Level {
	case dashboard.Warning:
		level = components.ToastWarning
	case dashboard.Error:
		level = components.ToastError
	}
	var cmd tea.Cmd
	a.toast, cmd = a.toast.Show(level, o.Text(), o.Details...)
	return a, cmd
}

func (a App) notifyError(title string, err error) (App, tea.Cmd) {
	var cmd tea.Cmd
	a.toast, cmd = a.toast.Show(components.ToastError, title+": "+err.Error())
	return a, cmd
}
