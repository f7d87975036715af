// Package theme tracks the persisted light/dark preference and the palettes
// that render it.
package theme

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/validate"
)

// Key is the store key holding the preference.
const Key = "theme"

// Persisted values.
const (
	ModeDark  = validate.ModeDark
	ModeLight = validate.ModeLight
)

// Source records where the current value came from.
type Source string

const (
	SourceUnset  Source = ""
	SourceStored Source = "stored"
	SourceSystem Source = "system"
	SourceUser   Source = "user"
)

// Store is the persisted string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Applier reflects the current theme somewhere visible.
type Applier interface {
	ApplyTheme(dark bool)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(dark bool)

// ApplyTheme implements Applier.
func (f ApplierFunc) ApplyTheme(dark bool) { f(dark) }

// Preference is the light/dark flag kept in sync with a Store.
type Preference struct {
	mu          sync.Mutex
	store       Store
	detector    Detector
	appliers    []Applier
	isDark      bool
	source      Source
	initialized bool
}

// NewPreference creates a Preference. Nothing is read until Initialize.
func NewPreference(store Store, detector Detector, appliers ...Applier) *Preference {
	if detector == nil {
		detector = Chain{}
	}
	return &Preference{
		store:    store,
		detector: detector,
		appliers: appliers,
	}
}

// AddApplier registers a further applier and applies the current value to it
// if the preference is already initialized.
func (p *Preference) AddApplier(a Applier) {
	p.mu.Lock()
	p.appliers = append(p.appliers, a)
	initialized, dark := p.initialized, p.isDark
	p.mu.Unlock()

	if initialized {
		a.ApplyTheme(dark)
	}
}

// Initialize reads the stored value, falling back to the system preference
// when it is absent or unrecognised. Only the first call has any effect.
func (p *Preference) Initialize() bool {
	p.mu.Lock()
	if p.initialized {
		dark := p.isDark
		p.mu.Unlock()
		return dark
	}

	if dark, ok := p.storedLocked(); ok {
		p.isDark = dark
		p.source = SourceStored
	} else {
		dark, _ := p.detector.PrefersDark()
		p.isDark = dark
		p.source = SourceSystem
	}
	p.initialized = true
	dark := p.isDark
	logrus.Debugf("theme initialized to %s from %s", modeOf(dark), p.source)
	p.mu.Unlock()

	p.apply(dark)
	return dark
}

// Toggle flips the preference, persists it and applies it.
func (p *Preference) Toggle() (bool, error) {
	p.mu.Lock()
	dark := !p.isDark
	p.mu.Unlock()
	return dark, p.Set(dark)
}

// Set stores and applies dark. The in-memory value changes even if the write
// fails; the error is returned for the caller to report.
func (p *Preference) Set(dark bool) error {
	p.mu.Lock()
	p.isDark = dark
	p.source = SourceUser
	p.initialized = true
	p.mu.Unlock()

	p.apply(dark)
	if p.store == nil {
		return nil
	}
	if err := p.store.Set(Key, modeOf(dark)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Reload re-reads the store after an external change and reports whether the
// value changed. An absent or unrecognised value keeps the current one.
func (p *Preference) Reload() bool {
	p.mu.Lock()
	dark, ok := p.storedLocked()
	if !ok || (p.initialized && dark == p.isDark) {
		p.mu.Unlock()
		return false
	}
	p.isDark = dark
	p.source = SourceStored
	p.initialized = true
	p.mu.Unlock()

	p.apply(dark)
	return true
}

// IsDark returns the current value.
func (p *Preference) IsDark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isDark
}

// Mode returns "dark" or "light".
func (p *Preference) Mode() string {
	return modeOf(p.IsDark())
}

// Source returns where the current value came from.
func (p *Preference) Source() Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

func (p *Preference) storedLocked() (dark bool, ok bool) {
	if p.store == nil {
		return false, false
	}
	v, found := p.store.Get(Key)
	if !found {
		return false, false
	}
	if !validate.ThemeMode(v) {
		logrus.Debugf("ignoring stored theme %q", v)
		return false, false
	}
	return v == ModeDark, true
}

func (p *Preference) apply(dark bool) {
	p.mu.Lock()
	appliers := p.appliers
	p.mu.Unlock()

	for _, a := range appliers {
		a.ApplyTheme(dark)
	}
}

// ParseMode converts "dark"/"light" to a flag.
func ParseMode(s string) (bool, error) {
	if !validate.ThemeMode(s) {
		return false, fmt.Errorf("unknown theme %q: want %s or %s", s, ModeDark, ModeLight)
	}
	return s == ModeDark, nil
}

func modeOf(dark bool) string {
	if dark {
		return ModeDark
	}
	return ModeLight
}
