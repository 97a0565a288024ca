package dashboard

// Modal names the dialog kinds of the dashboard
type Modal int

const (
	NoModal Modal = iota
	LogsModal
	CreateModal
	ConfigModal
	AuthModal
	FoldersModal
	ConfirmModal
)

func (m Modal) String() string {
	switch m {
	case LogsModal:
		return "logs"
	case CreateModal:
		return "create"
	case ConfigModal:
		return "config"
	case AuthModal:
		return "auth"
	case FoldersModal:
		return "folders"
	case ConfirmModal:
		return "confirm"
	}
	return "none"
}

// ParseModal resolves a name produced by Modal.String
func ParseModal(s string) Modal {
	for m := LogsModal; m <= ConfirmModal; m++ {
		if m.String() == s {
			return m
		}
	}
	return NoModal
}

// LogsState is the log viewer
type LogsState struct {
	Open          bool
	ContainerID   string
	ContainerName string
	AutoScroll    bool
	Stream        *Subscription
}

// CreateState is the new-profile dialog
type CreateState struct {
	Open bool
}

// ConfigState is the configuration editor
type ConfigState struct {
	Open        bool
	ProfileName string
	EditMode    bool
}

// AuthState is the credential capture dialog
type AuthState struct {
	Open        bool
	ProfileName string
	ReAuth      bool
	Running     bool
}

// FoldersState is the folder picker
type FoldersState struct {
	Open bool
	Path string
}

// ConfirmState is a pending destructive action
type ConfirmState struct {
	Open   bool
	Prompt string
	Action ActionKind
	Target string
}

// Session is the open/closed state of every modal. Each modal kind owns its
// own fields; closing a modal zeroes them.
type Session struct {
	Logs    LogsState
	Create  CreateState
	Config  ConfigState
	Auth    AuthState
	Folders FoldersState
	Confirm ConfirmState
}

// OpenLogs shows the log viewer for a container. A stream attached for a
// previous container is closed.
func (s *Session) OpenLogs(containerID, containerName string, autoScroll bool) {
	s.CloseLogs()
	s.Logs = LogsState{
		Open:          true,
		ContainerID:   containerID,
		ContainerName: containerName,
		AutoScroll:    autoScroll,
	}
}

// AttachStream binds a live subscription to the log viewer, closing any
// prior one. It returns false, closing sub, when the viewer has since moved
// to another container or been closed.
func (s *Session) AttachStream(sub *Subscription) bool {
	if sub == nil {
		return false
	}
	if !s.Logs.Open || s.Logs.ContainerID != sub.ContainerID {
		sub.Close()
		return false
	}
	if s.Logs.Stream != nil && s.Logs.Stream != sub {
		s.Logs.Stream.Close()
	}
	s.Logs.Stream = sub
	return true
}

// CurrentStream reports whether id belongs to the attached subscription
func (s *Session) CurrentStream(id string) bool {
	return s.Logs.Stream != nil && s.Logs.Stream.ID == id
}

// ToggleAutoScroll flips auto-scroll and returns the new value
func (s *Session) ToggleAutoScroll() bool {
	s.Logs.AutoScroll = !s.Logs.AutoScroll
	return s.Logs.AutoScroll
}

// CloseLogs hides the log viewer and tears its stream down
func (s *Session) CloseLogs() {
	if s.Logs.Stream != nil {
		s.Logs.Stream.Close()
	}
	s.Logs = LogsState{}
}

// OpenCreate shows the new-profile dialog
func (s *Session) OpenCreate() {
	s.Create = CreateState{Open: true}
}

// CloseCreate hides the new-profile dialog
func (s *Session) CloseCreate() {
	s.Create = CreateState{}
}

// OpenConfig shows the configuration editor for a profile
func (s *Session) OpenConfig(profile string, editMode bool) {
	s.Config = ConfigState{Open: true, ProfileName: profile, EditMode: editMode}
}

// CloseConfig hides the configuration editor
func (s *Session) CloseConfig() {
	s.Config = ConfigState{}
}

// OpenAuth shows the credential capture dialog
func (s *Session) OpenAuth(profile string, reauth bool) {
	s.Auth = AuthState{Open: true, ProfileName: profile, ReAuth: reauth}
}

// CloseAuth hides the credential capture dialog
func (s *Session) CloseAuth() {
	s.Auth = AuthState{}
}

// OpenFolders shows the folder picker at path
func (s *Session) OpenFolders(path string) {
	s.Folders = FoldersState{Open: true, Path: path}
}

// CloseFolders hides the folder picker
func (s *Session) CloseFolders() {
	s.Folders = FoldersState{}
}

// AskConfirm asks before running a destructive action on target
func (s *Session) AskConfirm(action ActionKind, target, label string) {
	s.Confirm = ConfirmState{
		Open:   true,
		Prompt: ConfirmPrompt(action, label),
		Action: action,
		Target: target,
	}
}

// CloseConfirm dismisses the confirmation and returns what was pending
func (s *Session) CloseConfirm() ConfirmState {
	pending := s.Confirm
	s.Confirm = ConfirmState{}
	return pending
}

// Active returns the modal that currently receives input
func (s *Session) Active() Modal {
	switch {
	case s.Confirm.Open:
		return ConfirmModal
	case s.Folders.Open:
		return FoldersModal
	case s.Logs.Open:
		return LogsModal
	case s.Config.Open:
		return ConfigModal
	case s.Auth.Open:
		return AuthModal
	case s.Create.Open:
		return CreateModal
	}
	return NoModal
}

// Close hides one modal
func (s *Session) Close(m Modal) {
	switch m {
	case LogsModal:
		s.CloseLogs()
	case CreateModal:
		s.CloseCreate()
	case ConfigModal:
		s.CloseConfig()
	case AuthModal:
		s.CloseAuth()
	case FoldersModal:
		s.CloseFolders()
	case ConfirmModal:
		s.CloseConfirm()
	}
}

// CloseAll hides every modal and releases the log stream
func (s *Session) CloseAll() {
	for m := LogsModal; m <= ConfirmModal; m++ {
		s.Close(m)
	}
}
