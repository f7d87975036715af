package countdown

// Status represents the run state of the countdown.
type Status int

const (
	Idle Status = iota
	Running
	Paused
	Completed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Level is the three-tier severity shown around the clock.
type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Snapshot is a consistent copy of the engine state for display.
type Snapshot struct {
	ID        string
	Input     Duration
	Remaining int
	Status    Status
	Level     Level
	Display   string
}
