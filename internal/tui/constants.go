package tui

// Package-level constants to avoid magic numbers and improve readability.
const (
	maxHours   = 23
	maxMinutes = 59
	maxSeconds = 59

	// fieldCount is the number of duration selectors (hours, minutes, seconds).
	fieldCount = 3

	// clockWidth is the inner width of the bordered clock face.
	clockWidth = 28
	// progressWidth is the default remaining-time bar width before the first resize.
	progressWidth = 32
	progressMax   = 60

	appTitle = "Countdown Timer"
)
