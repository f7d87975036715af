package countdown

import (
	"context"
	"time"
)

// Cancel stops a repeating schedule. It must be safe to call more than once.
type Cancel func()

// Scheduler runs fn every interval until the returned Cancel is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Cancel
}

// TickerScheduler drives schedules from a time.Ticker on its own goroutine.
type TickerScheduler struct {
	ctx context.Context
}

// NewTickerScheduler returns a scheduler whose schedules also stop when ctx is done.
func NewTickerScheduler(ctx context.Context) *TickerScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &TickerScheduler{ctx: ctx}
}

// Every implements Scheduler.
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Cancel {
	ctx, cancel := context.WithCancel(s.ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()
	return Cancel(cancel)
}
