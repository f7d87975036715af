// Package chime plays a short tone when a countdown completes.
package chime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate = beep.SampleRate(44100)
	// Attenuation applied to the tone, in powers of two.
	fadeVolume = -1.5
)

// Chime generates and plays a sine tone on the default audio device.
type Chime struct {
	mu          sync.Mutex
	frequency   float64
	length      time.Duration
	initialized bool
}

// New creates a Chime. The speaker is opened lazily on first Play.
func New(frequency float64, length time.Duration) *Chime {
	return &Chime{
		frequency: frequency,
		length:    length,
	}
}

// Play starts the tone and returns immediately. done, if non-nil, is closed
// when playback finishes.
func (c *Chime) Play(done chan<- struct{}) error {
	if err := c.ensureInitialized(); err != nil {
		return err
	}

	tone, err := c.tone()
	if err != nil {
		return err
	}
	if done != nil {
		tone = beep.Seq(tone, beep.Callback(func() { close(done) }))
	}
	speaker.Play(tone)
	logrus.Debugf("chime playing %.0fHz for %s", c.frequency, c.length)
	return nil
}

// PlayAndWait plays the tone and blocks until it ends or ctx is done.
func (c *Chime) PlayAndWait(ctx context.Context) error {
	done := make(chan struct{})
	if err := c.Play(done); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the audio device.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		speaker.Close()
		c.initialized = false
	}
}

// tone builds the finite streamer for one chime.
func (c *Chime) tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, c.frequency)
	if err != nil {
		return nil, fmt.Errorf("chime tone: %w", err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(c.length), sine),
		Base:     2,
		Volume:   fadeVolume,
	}, nil
}

// ensureInitialized initializes the speaker if not already done.
func (c *Chime) ensureInitialized() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	// Use a reasonable buffer size for low latency
	bufferSize := sampleRate.N(100 * time.Millisecond)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	c.initialized = true
	return nil
}
