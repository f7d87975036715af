package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ensigniasec/countdown/internal/validate"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600

	okRatio      = 0.5
	warningRatio = 0.2
)

// ErrInvalidDuration is returned for duration input outside the selector bounds.
var ErrInvalidDuration = errors.New("invalid duration")

// Duration is the user-editable duration input, one field per selector.
type Duration struct {
	Hours   int `validate:"min=0,max=23"`
	Minutes int `validate:"min=0,max=59"`
	Seconds int `validate:"min=0,max=59"`
}

// Total returns the input in seconds.
func (d Duration) Total() int {
	return d.Hours*secondsPerHour + d.Minutes*secondsPerMinute + d.Seconds
}

// Validate checks the selector bounds.
func (d Duration) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	return nil
}

func (d Duration) String() string {
	return FormatTime(d.Total())
}

// FromSeconds splits a number of seconds into selector fields.
func FromSeconds(total int) (Duration, error) {
	if total < 0 {
		return Duration{}, fmt.Errorf("%w: negative seconds %d", ErrInvalidDuration, total)
	}
	d := Duration{
		Hours:   total / secondsPerHour,
		Minutes: (total % secondsPerHour) / secondsPerMinute,
		Seconds: total % secondsPerMinute,
	}
	return d, d.Validate()
}

// ParseDuration accepts "1h2m3s", "HH:MM:SS", "MM:SS" or a plain number of seconds.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Duration{}, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		nums := make([]int, 0, 3)
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
			}
			nums = append(nums, n)
		}
		if len(nums) == 2 {
			nums = append([]int{0}, nums...)
		}
		d := Duration{Hours: nums[0], Minutes: nums[1], Seconds: nums[2]}
		return d, d.Validate()
	}

	if n, err := strconv.Atoi(s); err == nil {
		return FromSeconds(n)
	}

	td, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return FromSeconds(int(td.Round(time.Second) / time.Second))
}

// FormatTime renders seconds as HH:MM:SS. Hours are not clamped to a day.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / secondsPerHour
	m := (seconds % secondsPerHour) / secondsPerMinute
	s := seconds % secondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ShadowLevel grades remaining against total. A zero total is always critical.
func ShadowLevel(remaining, total int) Level {
	if remaining <= 0 || total <= 0 {
		return LevelCritical
	}
	ratio := float64(remaining) / float64(total)
	switch {
	case ratio > okRatio:
		return LevelOK
	case ratio > warningRatio:
		return LevelWarning
	default:
		return LevelCritical
	}
}
