package components

import "time"

// Tick timing shared by the events UI and its animations.
const (
	// UITickInterval is the base tick rate for the events UI
	UITickInterval = 100 * time.Millisecond

	// UITicksPerSecond is the animation rate derived from the tick interval
	UITicksPerSecond = int(time.Second / UITickInterval)
)
