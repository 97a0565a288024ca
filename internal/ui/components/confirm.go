package components

import (
	"strings"

	"gphotos-admin/internal/ui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmResult represents the result of a confirmation dialog.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// ConfirmedMsg is emitted once the dialog is answered
type ConfirmedMsg struct {
	Result ConfirmResult
}

// ConfirmModel is a Yes/No confirmation dialog embedded in the dashboard
type ConfirmModel struct {
	question    string
	description string
	yesLabel    string
	noLabel     string
	focused     bool // true = Yes is focused
	result      ConfirmResult
}

// ConfirmOption configures a ConfirmModel.
type ConfirmOption func(*ConfirmModel)

// NewConfirm creates a new confirmation dialog. No is focused by default.
func NewConfirm(question string, opts ...ConfirmOption) ConfirmModel {
	m := ConfirmModel{
		question: question,
		yesLabel: "Yes",
		noLabel:  "No",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithDescription adds a description to the confirmation.
func WithDescription(desc string) ConfirmOption {
	return func(m *ConfirmModel) {
		m.description = desc
	}
}

// WithLabels customizes the Yes/No labels.
func WithLabels(yes, no string) ConfirmOption {
	return func(m *ConfirmModel) {
		m.yesLabel = yes
		m.noLabel = no
	}
}

func answer(r ConfirmResult) tea.Cmd {
	return func() tea.Msg { return ConfirmedMsg{Result: r} }
}

// Update implements the key handling of the dialog
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || m.result != ConfirmPending {
		return m, nil
	}
	switch k.String() {
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.focused = !m.focused
	case "y", "Y":
		m.result = ConfirmYes
		return m, answer(m.result)
	case "n", "N", "esc":
		m.result = ConfirmNo
		return m, answer(m.result)
	case "enter":
		m.result = ConfirmNo
		if m.focused {
			m.result = ConfirmYes
		}
		return m, answer(m.result)
	}
	return m, nil
}

// View renders the dialog
func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Theme.Bold.Render(m.question))
	b.WriteString("\n")
	if m.description != "" {
		b.WriteString(styles.Theme.Muted.Render(m.description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	button := lipgloss.NewStyle().Padding(0, 2).Foreground(styles.ColorText)
	focused := lipgloss.NewStyle().Padding(0, 2).Bold(true).
		Foreground(styles.ColorBg).Background(styles.ColorPrimary)

	yes, no := button.Render(m.yesLabel), focused.Render(m.noLabel)
	if m.focused {
		yes, no = focused.Render(m.yesLabel), button.Render(m.noLabel)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no))
	b.WriteString("\n\n")
	b.WriteString(styles.RenderKeyHelp("y/n", "answer") + "  " +
		styles.RenderKeyHelp("enter", "confirm") + "  " +
		styles.RenderKeyHelp("esc", "cancel"))
	return b.String()
}

// Result returns the confirmation result.
func (m ConfirmModel) Result() ConfirmResult {
	return m.result
}

// Confirmed returns true if the user confirmed.
func (m ConfirmModel) Confirmed() bool {
	return m.result == ConfirmYes
}
