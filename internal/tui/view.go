package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/theme"
)

func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	pal := m.colors.get()
	snap := m.engine.Snapshot()

	var b strings.Builder
	b.WriteString(renderHeader(pal))
	b.WriteString("\n\n")
	b.WriteString(renderClock(m, pal, snap))
	b.WriteString("\n\n")
	b.WriteString(renderProgress(m, pal, snap))
	b.WriteString("\n\n")
	b.WriteString(renderButtons(pal, snap))
	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(pal.Accent).Bold(true).Render(m.flash))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderFooter(m))

	content := lipgloss.NewStyle().
		Foreground(pal.Foreground).
		Render(b.String())

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(pal.Background),
	)
}

func renderHeader(pal theme.Palette) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(pal.Foreground).Render(appTitle)
	toggle := lipgloss.NewStyle().
		Foreground(pal.Muted).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Border).
		Padding(0, 1).
		Render(pal.Icon() + " " + pal.Name)
	pad := clockWidth + 4 - lipgloss.Width(title) - lipgloss.Width(toggle)
	if pad < 1 {
		pad = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Repeat(" ", pad), toggle)
}

// renderClock draws the selectors and the remaining time inside a border
// coloured by the shadow level.
func renderClock(m Model, pal theme.Palette, snap countdown.Snapshot) string {
	selectors := renderSelectors(m, pal, snap.Input)
	setHint := lipgloss.NewStyle().Foreground(pal.Muted).Render("[ enter: Set Timer ]")
	display := lipgloss.NewStyle().Bold(true).Foreground(pal.Foreground).Render(snap.Display)
	status := lipgloss.NewStyle().Foreground(pal.Muted).Render(renderStatus(snap.Status))

	body := lipgloss.JoinVertical(lipgloss.Center, selectors, setHint, "", display, status)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Shadow(string(snap.Level))).
		Background(pal.Surface).
		Width(clockWidth).
		Align(lipgloss.Center).
		Padding(1, 1).
		Render(body)
}

func renderSelectors(m Model, pal theme.Palette, d countdown.Duration) string {
	values := []int{d.Hours, d.Minutes, d.Seconds}
	parts := make([]string, 0, fieldCount)
	for i, v := range values {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(pal.Foreground)
		if field(i) == m.focus {
			style = style.Foreground(pal.Surface).Background(pal.Accent).Bold(true)
		}
		parts = append(parts, style.Render(fmt.Sprintf("%02d", v)))
	}
	sep := lipgloss.NewStyle().Foreground(pal.Muted).Render(":")
	return strings.Join(parts, sep)
}

func renderProgress(m Model, pal theme.Palette, snap countdown.Snapshot) string {
	pct := 0.0
	if total := snap.Input.Total(); total > 0 {
		pct = float64(snap.Remaining) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}
	bar := m.progress
	bar.FullColor = string(pal.Shadow(string(snap.Level)))
	bar.EmptyColor = string(pal.Border)
	return bar.ViewAs(pct)
}

func renderButtons(pal theme.Palette, snap countdown.Snapshot) string {
	enabled := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Border).
		Foreground(pal.Foreground).
		Bold(true).
		Padding(0, 1)
	disabled := enabled.Foreground(pal.Muted).Bold(false)

	pick := func(ok bool) lipgloss.Style {
		if ok {
			return enabled
		}
		return disabled
	}

	canStart := snap.Remaining > 0 && snap.Status != countdown.Running
	canPause := snap.Status == countdown.Running

	return lipgloss.JoinHorizontal(lipgloss.Top,
		pick(canStart).Render(startLabel(snap.Status)),
		" ",
		pick(canPause).Render("Pause"),
		" ",
		enabled.Render("Reset"),
	)
}

func renderStatus(s countdown.Status) string {
	switch s {
	case countdown.Idle:
		return "ready"
	case countdown.Running:
		return "running…"
	case countdown.Paused:
		return "paused"
	case countdown.Completed:
		return "done"
	default:
		return ""
	}
}

func renderFooter(m Model) string {
	h := m.help
	h.ShowAll = m.helpVisible
	return h.View(m.keys)
}
