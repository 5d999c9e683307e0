// Package playback provides the playback clock that drives cue highlighting.
package playback

import "time"

const (
	MinRate  = 0.5
	MaxRate  = 2.0
	rateStep = 0.25

	tickInterval = 100 * time.Millisecond
)

// Output is an audio sink kept in step with the clock.
type Output interface {
	Play(pos time.Duration, rate float64) error
	Stop() error
}

// Clock tracks the playback position of the audio that accompanies a
// subtitle file. The clock is the time source; an attached Output is
// restarted whenever playback resumes, seeks or changes rate, and stopped
// when the clock pauses.
type Clock struct {
	Position time.Duration
	Duration time.Duration // zero means unbounded
	Rate     float64
	Paused   bool

	out     Output
	onError func(error)
}

// NewClock creates a paused clock at zero.
func NewClock(duration time.Duration) *Clock {
	return &Clock{
		Duration: duration,
		Rate:     1.0,
		Paused:   true,
	}
}

// Attach connects out to the clock. onError, if set, receives failures
// from out.
func (c *Clock) Attach(out Output, onError func(error)) {
	c.out = out
	c.onError = onError
	c.sync()
}

// Detach stops and disconnects the attached output.
func (c *Clock) Detach() {
	if c.out != nil {
		c.report(c.out.Stop())
	}
	c.out = nil
}

// sync starts or stops the output to match the clock state.
func (c *Clock) sync() {
	if c.out == nil {
		return
	}
	if c.Paused {
		c.report(c.out.Stop())
	} else {
		c.report(c.out.Play(c.Position, c.Rate))
	}
}

func (c *Clock) report(err error) {
	if err != nil && c.onError != nil {
		c.onError(err)
	}
}

// TickInterval returns how often the UI should call Tick.
func (c *Clock) TickInterval() time.Duration {
	return tickInterval
}

// Tick advances the position by elapsed wall time scaled by Rate. Returns
// true while playback continues; reaching the end pauses the clock.
func (c *Clock) Tick(elapsed time.Duration) bool {
	if c.Paused {
		return false
	}
	c.Position += time.Duration(float64(elapsed) * c.Rate)
	if c.AtEnd() {
		c.Position = c.Duration
		c.Paused = true
		c.sync()
		return false
	}
	return true
}

// TogglePause flips between playing and paused. Resuming at the end
// restarts from zero.
func (c *Clock) TogglePause() {
	if c.Paused && c.AtEnd() {
		c.Position = 0
	}
	c.Paused = !c.Paused
	c.sync()
}

// Play resumes playback if paused.
func (c *Clock) Play() {
	if c.Paused {
		c.TogglePause()
	}
}

// Seek moves to pos, clamped to [0, Duration].
func (c *Clock) Seek(pos time.Duration) {
	if pos < 0 {
		pos = 0
	}
	if c.Duration > 0 && pos > c.Duration {
		pos = c.Duration
	}
	c.Position = pos
	if !c.Paused {
		c.sync()
	}
}

// SeekBy moves relative to the current position.
func (c *Clock) SeekBy(delta time.Duration) {
	c.Seek(c.Position + delta)
}

// Faster raises the rate by one step.
func (c *Clock) Faster() {
	if c.Rate+rateStep <= MaxRate {
		c.Rate += rateStep
		if !c.Paused {
			c.sync()
		}
	}
}

// Slower lowers the rate by one step.
func (c *Clock) Slower() {
	if c.Rate-rateStep >= MinRate {
		c.Rate -= rateStep
		if !c.Paused {
			c.sync()
		}
	}
}

// AtEnd reports whether a bounded clock has reached its duration.
func (c *Clock) AtEnd() bool {
	return c.Duration > 0 && c.Position >= c.Duration
}
