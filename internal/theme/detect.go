package theme

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

// EnvVar overrides system detection when set to "dark" or "light".
const EnvVar = "COUNTDOWN_THEME"

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalRead      = "org.freedesktop.portal.Settings.Read"
	portalNamespace = "org.freedesktop.appearance"
	portalKey       = "color-scheme"

	// color-scheme values defined by the appearance portal.
	schemeNoPreference = 0
	schemePreferDark   = 1
	schemePreferLight  = 2

	defaultPortalTimeout = 250 * time.Millisecond
)

// Detector answers whether the system prefers a dark theme. ok is false when
// the detector has no opinion.
type Detector interface {
	PrefersDark() (dark bool, ok bool)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() (bool, bool)

// PrefersDark implements Detector.
func (f DetectorFunc) PrefersDark() (bool, bool) { return f() }

// Chain asks each detector in order and returns the first definite answer.
// It defaults to light when none has an opinion.
type Chain []Detector

// PrefersDark implements Detector.
func (c Chain) PrefersDark() (bool, bool) {
	for _, d := range c {
		if dark, ok := d.PrefersDark(); ok {
			return dark, true
		}
	}
	return false, false
}

// SystemDetector returns the default detection chain: environment override,
// desktop portal, then terminal background.
func SystemDetector() Detector {
	return Chain{
		EnvDetector{Name: EnvVar},
		PortalDetector{Timeout: defaultPortalTimeout},
		TerminalDetector{},
	}
}

// EnvDetector reads "dark" or "light" from an environment variable.
type EnvDetector struct {
	Name string
}

// PrefersDark implements Detector.
func (d EnvDetector) PrefersDark() (bool, bool) {
	v, ok := os.LookupEnv(d.Name)
	if !ok {
		return false, false
	}
	dark, err := ParseMode(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		logrus.Debugf("ignoring %s=%q", d.Name, v)
		return false, false
	}
	return dark, true
}

// PortalDetector queries the freedesktop appearance portal on the session bus.
type PortalDetector struct {
	Timeout time.Duration
}

// PrefersDark implements Detector.
func (d PortalDetector) PrefersDark() (bool, bool) {
	// Without an explicit bus address godbus may try to autolaunch one.
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		return false, false
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		logrus.Debugf("session bus unavailable: %v", err)
		return false, false
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultPortalTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(portalDest, dbus.ObjectPath(portalPath))
	call := obj.CallWithContext(ctx, portalRead, 0, portalNamespace, portalKey)
	if call.Err != nil {
		logrus.Debugf("appearance portal read failed: %v", call.Err)
		return false, false
	}

	var v dbus.Variant
	if err := call.Store(&v); err != nil {
		logrus.Debugf("appearance portal reply: %v", err)
		return false, false
	}
	return schemeToDark(v.Value())
}

// schemeToDark interprets a color-scheme reply. Settings.Read wraps the value
// in a second variant.
func schemeToDark(value any) (bool, bool) {
	if inner, ok := value.(dbus.Variant); ok {
		value = inner.Value()
	}
	scheme, ok := value.(uint32)
	if !ok {
		return false, false
	}
	switch scheme {
	case schemePreferDark:
		return true, true
	case schemePreferLight:
		return false, true
	case schemeNoPreference:
		return false, false
	default:
		return false, false
	}
}

// TerminalDetector uses the terminal's background colour.
type TerminalDetector struct{}

// PrefersDark implements Detector.
func (TerminalDetector) PrefersDark() (bool, bool) {
	return lipgloss.HasDarkBackground(), true
}
