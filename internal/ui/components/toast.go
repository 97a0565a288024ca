package components

import (
	"time"

	"gphotos-admin/internal/ui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastLevel grades a toast
type ToastLevel int

const (
	ToastSuccess ToastLevel = iota
	ToastWarning
	ToastError
)

// ToastExpiredMsg hides the toast with the matching id
type ToastExpiredMsg struct {
	ID int
}

// ToastModel shows one transient notification at a time
type ToastModel struct {
	id       int
	level    ToastLevel
	text     string
	details  []string
	duration time.Duration
}

// NewToast creates a toast area whose messages last for d
func NewToast(d time.Duration) ToastModel {
	return ToastModel{duration: d}
}

// Show replaces the current toast and schedules its expiry
func (m ToastModel) Show(level ToastLevel, text string, details ...string) (ToastModel, tea.Cmd) {
	m.id++
	m.level = level
	m.text = text
	m.details = details
	id := m.id
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Update hides the toast once its expiry arrives. An expiry of an older
// toast is ignored.
func (m ToastModel) Update(msg tea.Msg) ToastModel {
	if e, ok := msg.(ToastExpiredMsg); ok && e.ID == m.id {
		m.text = ""
		m.details = nil
	}
	return m
}

// Visible reports whether a toast is shown
func (m ToastModel) Visible() bool {
	return m.text != ""
}

// Text returns the current message
func (m ToastModel) Text() string {
	return m.text
}

// Level returns the level of the current message
func (m ToastModel) Level() ToastLevel {
	return m.level
}

// View renders the toast line
func (m ToastModel) View() string {
	if m.text == "" {
		return ""
	}
	style := styles.Theme.ToastSuccess
	switch m.level {
	case ToastWarning:
		style = styles.Theme.ToastWarning
	case ToastError:
		style = styles.Theme.ToastError
	}
	out := style.Render(m.text)
	for _, d := range m.details {
		out += "\n  " + styles.Theme.Muted.Render("• "+d)
	}
	return out
}
