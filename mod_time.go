package morphcloud

import (
	"time"
)

const (
	// FrameStep is the animation time added per frame.
	FrameStep float32 = 0.01
	// WallClockRate converts elapsed seconds into animation time so a 60 Hz
	// wall clock advances at FrameStep per frame.
	WallClockRate float32 = 0.6
)

// FrameClock is the animation clock. It advances once per frame, either by a
// fixed step or by elapsed wall time.
type FrameClock struct {
	Frame     uint64
	T         float32
	Dt        time.Duration
	WallClock bool

	last time.Time
	now  func() time.Time
}

func NewFrameClock(wallClock bool) *FrameClock {
	return &FrameClock{WallClock: wallClock, now: time.Now}
}

func (c *FrameClock) Advance() {
	now := c.now()
	if !c.last.IsZero() {
		c.Dt = now.Sub(c.last)
	}
	c.last = now
	c.Frame++

	if c.WallClock {
		c.T += float32(c.Dt.Seconds()) * WallClockRate
		return
	}
	c.T += FrameStep
}

type TimeModule struct {
	WallClock bool
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewFrameClock(mod.WallClock))
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(clock *FrameClock) {
	clock.Advance()
}
