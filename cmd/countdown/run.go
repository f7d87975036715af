package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// errZeroDuration is returned when a headless run is asked to count down from zero.
var errZeroDuration = errors.New("duration must be greater than zero")

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var runCmd = &cobra.Command{
	Use:   "run DURATION",
	Short: "Run a countdown without the TUI, printing the remaining time every tick",
	Long: `Run a countdown in the foreground. DURATION accepts 1h2m3s, HH:MM:SS, MM:SS or plain seconds.
The command exits 0 when the countdown completes and stops cleanly on Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := countdown.ParseDuration(args[0])
		if err != nil {
			logrus.Fatal(err)
		}
		interval, err := cfg.TickInterval()
		if err != nil {
			logrus.Fatal(err)
		}
		if runInterval != "" {
			if interval, err = time.ParseDuration(runInterval); err != nil || interval <= 0 {
				logrus.Fatalf("Invalid --interval %q", runInterval)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		completed, err := runCountdown(ctx, cmd.OutOrStdout(), d, interval)
		if err != nil {
			logrus.Fatal(err)
		}
		if !completed || !(runChime || cfg.Chime.Enabled) {
			return
		}

		c, err := newChime(cfg)
		if err != nil {
			logrus.Fatal(err)
		}
		defer c.Close()
		if err := c.PlayAndWait(ctx); err != nil {
			logrus.Warnf("chime failed: %v", err)
		}
	},
}

// runCountdown counts d down on a ticker, writing the display to out once on
// start and after every tick. It reports whether the countdown completed;
// cancelling ctx stops it early without an error.
func runCountdown(ctx context.Context, out io.Writer, d countdown.Duration, interval time.Duration) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine := countdown.New(
		countdown.WithScheduler(countdown.NewTickerScheduler(ctx)),
		countdown.WithInterval(interval),
	)
	defer engine.Close()

	if err := engine.SetInput(d); err != nil {
		return false, err
	}
	engine.Set()
	if engine.Remaining() == 0 {
		return false, errZeroDuration
	}

	var (
		mu   sync.Mutex
		last = -1
	)
	emit := func(s countdown.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.Remaining == last {
			return
		}
		last = s.Remaining
		fmt.Fprintln(out, s.Display)
	}

	done := make(chan struct{})
	engine.OnChange(func(s countdown.Snapshot) {
		if s.Status == countdown.Running || s.Status == countdown.Completed {
			emit(s)
		}
	})
	engine.OnComplete(func(countdown.Snapshot) { close(done) })

	emit(engine.Snapshot())
	engine.Start()

	select {
	case <-done:
		mu.Lock()
		fmt.Fprintln(out, "done")
		mu.Unlock()
		return true, nil
	case <-ctx.Done():
		engine.Pause()
		logrus.Infof("stopped at %s", engine.Display())
		return false, nil
	}
}
