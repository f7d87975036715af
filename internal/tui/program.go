package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/storage"
)

// RunOptions wires the TUI to its collaborators.
type RunOptions struct {
	Model     Options
	Storage   *storage.Storage // Watched for theme changes made by other instances; may be nil
	AltScreen bool
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(opts.Model)
	defer model.Close()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, progOpts...)

	// Bridge: external writes to the preference file become messages.
	if opts.Storage != nil {
		w, err := storage.NewWatcher(opts.Storage, func() { p.Send(themeChangedMsg{}) })
		if err != nil {
			logrus.Debugf("preference watcher unavailable: %v", err)
		} else if err := w.Start(ctx); err != nil {
			logrus.Debugf("preference watcher failed to start: %v", err)
		}
	}

	// Silence external logs (WARN/ERRO) during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	// Run TUI blocking in this goroutine.
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	}
	return err
}
