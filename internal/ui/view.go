package ui

import (
	"fmt"
	"strings"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/ui/styles"
	"gphotos-admin/internal/validation"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (a App) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.Theme.Title.Render("Google Photos Sync"),
		RenderStats(a.snapshot, a.opts.Now()),
	)

	var body string
	if m := a.session.Active(); m != dashboard.NoModal {
		body = lipgloss.Place(a.width, max(a.height-6, 10), lipgloss.Center, lipgloss.Center,
			styles.Theme.Modal.Render(a.modalView(m)))
	} else {
		body = a.listsView()
	}

	footer := a.help.View(a.keys)
	if a.toast.Visible() {
		footer = a.toast.View() + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, footer)
}

func (a App) listsView() string {
	if !a.loaded {
		return styles.Theme.Muted.Render("Loading…")
	}

	var b strings.Builder
	b.WriteString(a.sectionHeading(containersSection, fmt.Sprintf("Containers (%d)", len(a.snapshot.Containers))))
	b.WriteString("\n")
	switch {
	case len(a.snapshot.Containers) == 0 && a.snapshot.ContainersErr != nil:
		b.WriteString(styles.Theme.Error.Render("Could not load containers: " + a.snapshot.ContainersErr.Error()))
		b.WriteString("\n")
	case len(a.snapshot.Containers) == 0:
		b.WriteString(styles.Theme.Muted.Render("No sync workers yet."))
		b.WriteString("\n")
	}
	for i, c := range a.snapshot.Containers {
		selected := a.section == containersSection && a.cursor[containersSection] == i
		b.WriteString(RenderContainer(c, selected, a.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.sectionHeading(profilesSection, fmt.Sprintf("Available profiles (%d)", len(a.snapshot.Profiles))))
	b.WriteString("\n")
	switch {
	case len(a.snapshot.Profiles) == 0 && a.snapshot.ProfilesErr != nil:
		b.WriteString(styles.Theme.Error.Render("Could not load profiles: " + a.snapshot.ProfilesErr.Error()))
		b.WriteString("\n")
	case len(a.snapshot.Profiles) == 0:
		b.WriteString(styles.Theme.Muted.Render("Every profile has a worker. Press n to add one."))
		b.WriteString("\n")
	}
	for i, p := range a.snapshot.Profiles {
		selected := a.section == profilesSection && a.cursor[profilesSection] == i
		b.WriteString(RenderProfile(p, selected, a.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) sectionHeading(s section, text string) string {
	if a.section == s {
		return styles.Theme.Selected.Render("▸ " + text)
	}
	return styles.Theme.Heading.Render("  " + text)
}

func (a App) modalView(m dashboard.Modal) string {
	switch m {
	case dashboard.ConfirmModal:
		return a.confirm.View()
	case dashboard.FoldersModal:
		return a.foldersView()
	case dashboard.LogsModal:
		return a.logsView()
	case dashboard.ConfigModal:
		return a.configView()
	case dashboard.AuthModal:
		return a.authView()
	case dashboard.CreateModal:
		return a.createForm.View() + "\n" + hints("enter", "create", "esc", "cancel")
	}
	return ""
}

func (a App) logsView() string {
	logs := a.session.Logs
	scroll := "off"
	if logs.AutoScroll {
		scroll = "on"
	}
	status := styles.Theme.Muted.Render(fmt.Sprintf("%d lines · auto-scroll %s", len(a.logLines), scroll))
	if logs.Stream == nil {
		status += styles.Theme.Warning.Render(" · not live")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Theme.Title.Render("Logs: "+logs.ContainerName),
		status,
		"",
		a.logView.View(),
		"",
		hints("a", "auto-scroll", "w", "save to file", "↑/↓", "scroll", "esc", "close"),
	)
}

func (a App) configView() string {
	if !a.configReady {
		return styles.Theme.Muted.Render("Loading configuration for " + a.session.Config.ProfileName + "…")
	}

	var b strings.Builder
	b.WriteString(a.configForm.View())
	b.WriteString("\n")
	b.WriteString(a.cronPreview())
	b.WriteString("\n\n")
	b.WriteString(hints("tab", "next", "ctrl+f", "pick folder", "ctrl+s", "save", "esc", "cancel"))
	return b.String()
}

// cronPreview shows when the worker would next run with the typed schedule
func (a App) cronPreview() string {
	now := a.opts.Now()
	runs, err := validation.NextRuns(a.configForm.Value("cron_schedule"), now, 3)
	if err != nil || len(runs) == 0 {
		return styles.Theme.Muted.Render("Next runs: -")
	}
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = fmt.Sprintf("%s (%s)", r.Format("Mon 02 Jan 15:04"), humanize.RelTime(r, now, "ago", "from now"))
	}
	return styles.Theme.Muted.Render("Next runs: " + strings.Join(parts, ", "))
}

func (a App) authView() string {
	auth := a.session.Auth
	title := "Authenticate " + auth.ProfileName
	if auth.ReAuth {
		title = "Re-authenticate " + auth.ProfileName
	}

	steps := []string{
		"1. Press enter to start a browser session on the server.",
		"2. Press o to open it (" + a.opts.VNCURL + ") and sign in to Google Photos.",
		"3. Press ctrl+s once signed in to save the credentials.",
	}
	state := styles.Theme.Muted.Render("Session not started")
	if auth.Running {
		state = styles.Theme.Success.Render("Session running")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Theme.Title.Render(title),
		"",
		strings.Join(steps, "\n"),
		"",
		state,
		"",
		hints("enter", "start", "o", "open browser", "ctrl+s", "save credentials", "esc", "close"),
	)
}

func (a App) foldersView() string {
	var b strings.Builder
	b.WriteString(styles.Theme.Title.Render("Choose photo directory"))
	b.WriteString("\n")
	b.WriteString(styles.Theme.Bold.Render(a.session.Folders.Path))
	b.WriteString("\n\n")

	switch {
	case a.folders == nil:
		b.WriteString(styles.Theme.Muted.Render("Loading…"))
		b.WriteString("\n")
	case len(a.folders.Directories) == 0:
		b.WriteString(styles.Theme.Muted.Render("No sub-directories"))
		b.WriteString("\n")
	default:
		for i, d := range a.folders.Directories {
			if i == a.folderCursor {
				b.WriteString(styles.Theme.Selected.Render("▸ " + d + "/"))
			} else {
				b.WriteString("  " + d + "/")
			}
			b.WriteString("\n")
		}
	}
	if a.folders != nil {
		b.WriteString("\n")
		b.WriteString(styles.Theme.Muted.Render(humanize.Comma(int64(a.folders.FilesCount)) + " files here"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hints("enter", "open", "backspace", "up a level", "s", "select", "esc", "cancel"))
	return b.String()
}

// hints renders key/description pairs
func hints(pairs ...string) string {
	out := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, styles.RenderKeyHelp(pairs[i], pairs[i+1]))
	}
	return strings.Join(out, "  ")
}
