// Package styles holds the lipgloss palette of the terminal dashboard.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#4285f4")
	ColorSuccess = lipgloss.Color("#34a853")
	ColorWarning = lipgloss.Color("#fbbc05")
	ColorError   = lipgloss.Color("#ea4335")
	ColorText    = lipgloss.Color("#e5e5e5")
	ColorMuted   = lipgloss.Color("#737373")
	ColorBorder  = lipgloss.Color("#404040")
	ColorBg      = lipgloss.Color("#000000")
)

// Theme contains the composed styles of the dashboard
var Theme = struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	BadgeRunning lipgloss.Style
	BadgeStopped lipgloss.Style
	BadgeInfo    lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Modal        lipgloss.Style

	FormLabel lipgloss.Style
	FormError lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	Heading:  lipgloss.NewStyle().Bold(true).Foreground(ColorText),
	Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
	Bold:     lipgloss.NewStyle().Bold(true).Foreground(ColorText),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),

	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),

	BadgeRunning: lipgloss.NewStyle().Foreground(ColorBg).Background(ColorSuccess).Padding(0, 1),
	BadgeStopped: lipgloss.NewStyle().Foreground(ColorBg).Background(ColorError).Padding(0, 1),
	BadgeInfo:    lipgloss.NewStyle().Foreground(ColorBg).Background(ColorPrimary).Padding(0, 1),

	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1),
	CardSelected: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1),
	Modal: lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2),

	FormLabel: lipgloss.NewStyle().Foreground(ColorText),
	FormError: lipgloss.NewStyle().Foreground(ColorError),

	ToastSuccess: lipgloss.NewStyle().Foreground(ColorBg).Background(ColorSuccess).Padding(0, 1),
	ToastWarning: lipgloss.NewStyle().Foreground(ColorBg).Background(ColorWarning).Padding(0, 1),
	ToastError:   lipgloss.NewStyle().Foreground(ColorBg).Background(ColorError).Padding(0, 1),

	HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	HelpDesc: lipgloss.NewStyle().Foreground(ColorMuted),
}

// RenderKeyHelp renders a single key/description hint
func RenderKeyHelp(key, desc string) string {
	return Theme.HelpKey.Render(key) + " " + Theme.HelpDesc.Render(desc)
}

// LogLevel colors a log level word
func LogLevel(level string) lipgloss.Style {
	switch level {
	case "ERROR", "FATAL", "CRITICAL":
		return Theme.Error
	case "WARN", "WARNING":
		return Theme.Warning
	case "DEBUG", "TRACE":
		return Theme.Muted
	}
	return Theme.Success
}
