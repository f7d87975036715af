package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// tickScheduler implements countdown.Scheduler on the Bubble Tea event loop.
// Every only records the schedule; the command that delivers the first tick
// is collected with take and returned from Update. All methods run on the
// update goroutine.
type tickScheduler struct {
	engineID string
	seq      int
	active   int
	interval time.Duration
	fn       func()
	pending  tea.Cmd
}

var _ countdown.Scheduler = (*tickScheduler)(nil)

// Every implements countdown.Scheduler.
func (s *tickScheduler) Every(interval time.Duration, fn func()) countdown.Cancel {
	s.seq++
	seq := s.seq
	s.active = seq
	s.interval = interval
	s.fn = fn
	s.pending = s.tickCmd(seq)
	return func() {
		if s.active == seq {
			s.active = 0
			s.fn = nil
			s.pending = nil
		}
	}
}

// take returns and clears the command for a newly created schedule.
func (s *tickScheduler) take() tea.Cmd {
	cmd := s.pending
	s.pending = nil
	return cmd
}

// live reports whether a schedule is active.
func (s *tickScheduler) live() bool { return s.active != 0 }

// handle runs one tick and re-arms the schedule if it is still live.
func (s *tickScheduler) handle(msg tickMsg) tea.Cmd {
	if msg.EngineID != s.engineID || msg.Seq != s.active || s.fn == nil {
		return nil
	}
	s.fn()
	if msg.Seq != s.active {
		return nil
	}
	return s.tickCmd(msg.Seq)
}

func (s *tickScheduler) tickCmd(seq int) tea.Cmd {
	id := s.engineID
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return tickMsg{EngineID: id, Seq: seq}
	})
}
