package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.help.Width = x.Width
		m.progress.Width = clampProgressWidth(x.Width)
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		return m, cmd

	case tickMsg:
		before := m.engine.Status()
		cmd := m.sched.handle(x)
		if before == countdown.Running && m.engine.Status() == countdown.Completed {
			m.flash = "Time's up!"
			return m, tea.Batch(cmd, m.playChime())
		}
		return m, cmd

	case themeChangedMsg:
		if m.pref.Reload() {
			logrus.Debugf("theme reloaded from store: %s", m.pref.Mode())
		}
		return m, nil

	case chimeErrMsg:
		m.flash = "chime failed: " + errString(x.Err)
		return m, nil
	}

	return m, nil
}

// playChime returns a command that starts the completion sound.
func (m Model) playChime() tea.Cmd {
	if m.chime == nil {
		return nil
	}
	player := m.chime
	return func() tea.Msg {
		if err := player.Play(nil); err != nil {
			return chimeErrMsg{Err: err}
		}
		return nil
	}
}

func errString(e error) string {
	if e == nil {
		return ""
	}
	return e.Error()
}
