package tui

// Message types for Bubble Tea update loop.

// tickMsg fires once per interval while a countdown schedule is live.
// Seq identifies the schedule; ticks from a cancelled schedule are dropped.
type tickMsg struct {
	EngineID string
	Seq      int
}

// themeChangedMsg reports that the preference file was rewritten externally.
type themeChangedMsg struct{}

// chimeErrMsg carries a failure from the completion sound.
type chimeErrMsg struct{ Err error }
