package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/theme"
)

// field is the focused duration selector.
type field int

const (
	fieldHours field = iota
	fieldMinutes
	fieldSeconds
)

// Player plays the completion sound without blocking.
type Player interface {
	Play(done chan<- struct{}) error
}

// palette holds the active colours. It is shared between Model copies and
// swapped by the theme preference.
type palette struct {
	mu sync.RWMutex
	p  theme.Palette
}

// ApplyTheme implements theme.Applier.
func (p *palette) ApplyTheme(dark bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.p = theme.PaletteFor(dark)
}

func (p *palette) get() theme.Palette {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.p
}

// Options configures a Model.
type Options struct {
	Interval   time.Duration
	Initial    countdown.Duration
	Preference *theme.Preference
	Chime      Player
	ShowHelp   bool
}

// Model is the root Bubble Tea model.
type Model struct {
	engine *countdown.Engine
	sched  *tickScheduler
	pref   *theme.Preference
	colors *palette
	chime  Player

	focus       field
	width       int
	height      int
	helpVisible bool
	quitting    bool
	flash       string

	progress progress.Model
	help     help.Model

	// keymap for consistent keybindings
	keys keyMap
}

// NewModel constructs a Model with initial state. The preference should be
// initialized by the caller before the program starts.
func NewModel(opts Options) Model {
	sched := &tickScheduler{}
	engine := countdown.New(
		countdown.WithScheduler(sched),
		countdown.WithInterval(opts.Interval),
	)
	sched.engineID = engine.ID()
	if opts.Initial.Total() > 0 {
		if err := engine.SetInput(opts.Initial); err == nil {
			engine.Set()
		}
	}

	pref := opts.Preference
	if pref == nil {
		pref = theme.NewPreference(nil, theme.Chain{})
	}
	colors := &palette{p: theme.PaletteFor(pref.IsDark())}
	pref.AddApplier(colors)

	p := progress.New(progress.WithSolidFill(string(colors.get().OK)), progress.WithoutPercentage())
	p.Width = progressWidth

	return Model{
		engine:      engine,
		sched:       sched,
		pref:        pref,
		colors:      colors,
		chime:       opts.Chime,
		focus:       fieldHours,
		helpVisible: opts.ShowHelp,
		progress:    p,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(appTitle)
}

// Engine exposes the countdown engine.
func (m Model) Engine() *countdown.Engine { return m.engine }

// Close cancels any pending tick.
func (m Model) Close() {
	m.engine.Close()
}
