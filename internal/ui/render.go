package ui

import (
	"fmt"
	"strings"
	"time"

	"gphotos-admin/internal/dashboard"
	"gphotos-admin/internal/types"
	"gphotos-admin/internal/ui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

// RenderStats renders the header counters
func RenderStats(s dashboard.Snapshot, now time.Time) string {
	var counters string
	if s.StatsErr != nil && s.Stats == (types.Stats{}) {
		counters = styles.Theme.Error.Render("stats unavailable")
	} else {
		counters = strings.Join([]string{
			styles.Theme.Bold.Render(fmt.Sprintf("Total %d", s.Stats.Total)),
			styles.Theme.Success.Render(fmt.Sprintf("Running %d", s.Stats.Running)),
			styles.Theme.Error.Render(fmt.Sprintf("Stopped %d", s.Stats.Stopped)),
		}, styles.Theme.Muted.Render(" · "))
	}
	if s.FetchedAt.IsZero() {
		return counters
	}
	updated := "updated " + humanize.RelTime(s.FetchedAt, now, "ago", "from now")
	return counters + "   " + styles.Theme.Muted.Render(updated)
}

// RenderContainer renders one container card
func RenderContainer(c types.Container, selected bool, width int) string {
	badge := styles.Theme.BadgeStopped.Render(strings.ToUpper(orDash(c.Status)))
	if c.IsRunning() {
		badge = styles.Theme.BadgeRunning.Render("RUNNING")
	}
	title := styles.Theme.Heading.Render(c.Title()) + " " + badge
	if c.SyncStatus != "" {
		title += " " + styles.Theme.BadgeInfo.Render(c.SyncStatus)
	}

	details := []string{
		field("profile", orDash(c.Profile)),
		field("id", c.ShortID()),
		field("schedule", orDash(c.CronSchedule)),
	}
	if c.NextRun != "" {
		next := c.NextRun
		if c.TimeUntil != "" {
			next += " (" + c.TimeUntil + ")"
		}
		details = append(details, field("next run", next))
	}
	if c.WorkerCount != "" {
		details = append(details, field("workers", c.WorkerCount.String()))
	}
	if c.LogLevel != "" {
		details = append(details, field("log", c.LogLevel))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(details, "  "),
		actionHints(dashboard.ContainerActions(c)),
	)
	return card(selected, width).Render(body)
}

// RenderProfile renders one available-profile row
func RenderProfile(p types.Profile, selected bool, width int) string {
	title := styles.Theme.Heading.Render(p.Title())
	if p.DisplayName != "" && p.DisplayName != p.Name {
		title += " " + styles.Theme.Muted.Render(p.Name)
	}

	auth := styles.Theme.Warning.Render("not authenticated")
	if p.Authenticated {
		auth = styles.Theme.Success.Render("authenticated")
	}
	compose := styles.Theme.Warning.Render("not configured")
	if p.HasCompose {
		compose = styles.Theme.Success.Render("configured")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		auth+styles.Theme.Muted.Render(" · ")+compose,
		actionHints(dashboard.ProfileActions(p)),
	)
	return card(selected, width).Render(body)
}

func card(selected bool, width int) lipgloss.Style {
	style := styles.Theme.Card
	if selected {
		style = styles.Theme.CardSelected
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style
}

func field(name, value string) string {
	return styles.Theme.Muted.Render(name+":") + " " + value
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// actionHints lists the keys of a row's actions in display order
func actionHints(actions []dashboard.ActionKind) string {
	hints := lo.FilterMap(actions, func(k dashboard.ActionKind, _ int) (string, bool) {
		keyName, ok := actionKeys[k]
		return styles.RenderKeyHelp(keyName, k.Label()), ok
	})
	return strings.Join(hints, "  ")
}

func renderLogLine(l dashboard.LogLine) string {
	out := l.Display()
	if l.Structured {
		out = styles.LogLevel(l.Level).Render(fmt.Sprintf("%-5s", l.Level)) + " " + l.Message
	}
	if !l.Timestamp.IsZero() {
		out = styles.Theme.Muted.Render(l.Timestamp.Local().Format(time.TimeOnly)) + " " + out
	}
	return out
}
