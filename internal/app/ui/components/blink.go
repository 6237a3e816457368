package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	glyphIdle = "○"
	glyphLit  = "●"
)

// Spring tuning for the activity dot. Stiff enough that a single event
// lights the glyph within a couple of ticks, damped enough that it falls
// back without ringing.
const (
	pulseStiffness = 8.0
	pulseDamping   = 0.7

	// Ticks the target stays pinned at lit after each Pulse.
	pulseHold = 2

	// Spring positions at or above this render the lit glyph.
	litThreshold = 0.3
)

// Blink is the spring-driven activity dot in the events header. Pulse
// pins the spring target to lit; when the hold runs out the target drops
// and the spring settles, so a burst of events reads as a flutter rather
// than a steady light.
type Blink struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	hold   int
}

// NewBlink returns an idle indicator.
func NewBlink() *Blink {
	return &Blink{
		spring: harmonica.NewSpring(harmonica.FPS(UITicksPerSecond), pulseStiffness, pulseDamping),
	}
}

// Pulse registers one unit of activity.
func (b *Blink) Pulse() {
	b.target = 1
	b.hold = pulseHold
}

// Update advances the spring by one UI tick.
func (b *Blink) Update() {
	if b.hold > 0 {
		b.hold--
	} else {
		b.target = 0
	}

	b.pos, b.vel = b.spring.Update(b.pos, b.vel, b.target)
}

// Frame returns the glyph for the current spring position.
func (b *Blink) Frame() string {
	if b.pos >= litThreshold {
		return glyphLit
	}

	return glyphIdle
}

// Render draws the current frame in the given style.
func (b *Blink) Render(style lipgloss.Style) string {
	return style.Render(b.Frame())
}

// Active reports whether the indicator is lit or still settling.
func (b *Blink) Active() bool {
	return b.target == 1 || b.pos >= litThreshold
}
