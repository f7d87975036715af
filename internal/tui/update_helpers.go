package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn,cyclop
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.engine.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case key.Matches(msg, m.keys.Right):
		m.focus = (m.focus + 1) % fieldCount
	case key.Matches(msg, m.keys.Up):
		m.adjust(m.focus, 1)
	case key.Matches(msg, m.keys.Down):
		m.adjust(m.focus, -1)

	case key.Matches(msg, m.keys.HourUp):
		m.adjust(fieldHours, 1)
	case key.Matches(msg, m.keys.HourDown):
		m.adjust(fieldHours, -1)
	case key.Matches(msg, m.keys.MinuteUp):
		m.adjust(fieldMinutes, 1)
	case key.Matches(msg, m.keys.MinuteDown):
		m.adjust(fieldMinutes, -1)
	case key.Matches(msg, m.keys.SecondUp):
		m.adjust(fieldSeconds, 1)
	case key.Matches(msg, m.keys.SecondDown):
		m.adjust(fieldSeconds, -1)

	case key.Matches(msg, m.keys.Set):
		m.flash = ""
		m.engine.Set()
	case key.Matches(msg, m.keys.Start):
		m.flash = ""
		m.engine.Start()
	case key.Matches(msg, m.keys.Pause):
		m.engine.Pause()
	case key.Matches(msg, m.keys.Reset):
		m.flash = ""
		m.engine.Reset()

	case key.Matches(msg, m.keys.Theme):
		m.flash = ""
		if _, err := m.pref.Toggle(); err != nil {
			m.flash = "theme not saved: " + err.Error()
		}
	}

	return m, m.sched.take()
}

// adjust moves one selector by delta, wrapping within its bounds. Only the
// input changes; the countdown is untouched until Set or Reset.
func (m *Model) adjust(f field, delta int) {
	d := m.engine.Input()
	switch f {
	case fieldHours:
		d.Hours = wrap(d.Hours+delta, maxHours)
	case fieldMinutes:
		d.Minutes = wrap(d.Minutes+delta, maxMinutes)
	case fieldSeconds:
		d.Seconds = wrap(d.Seconds+delta, maxSeconds)
	}
	m.focus = f
	// Values are wrapped into range, so this cannot fail.
	_ = m.engine.SetInput(d)
}

// wrap maps v into [0, maxValue].
func wrap(v, maxValue int) int {
	n := maxValue + 1
	return ((v % n) + n) % n
}

// startLabel mirrors the start button text.
func startLabel(s countdown.Status) string {
	if s == countdown.Paused {
		return "Resume"
	}
	return "Start"
}

func clampProgressWidth(width int) int {
	w := width - 8
	if w > progressMax {
		w = progressMax
	}
	if w < 10 {
		w = 10
	}
	return w
}
