package gesture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gekko3d/morphcloud/cloud/core"
)

// Source delivers tracking results. Next blocks until a frame is available and
// returns io.EOF once the source is exhausted.
type Source interface {
	Next(ctx context.Context) (core.LandmarkFrame, error)
}

// Pump classifies every frame from src and posts the result to box until ctx
// is done or the source ends. A source ending with io.EOF is not an error.
// Reporting is left to the caller: failures come back as the returned error
// and gesture changes are visible through box.
func Pump(ctx context.Context, src Source, c *Classifier, box *Mailbox) error {
	for {
		f, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("landmark source: %w", err)
		}
		box.Post(c.Handle(f))
	}
}

// Step is one scripted landmark frame.
type Step struct {
	Gesture core.Gesture
	Wrist   core.Landmark
}

// ScriptedSource replays Steps at a fixed interval, optionally looping.
type ScriptedSource struct {
	Steps    []Step
	Interval time.Duration
	Loop     bool

	pos    int
	ticker *time.Ticker
}

func NewScriptedSource(steps []Step, interval time.Duration, loop bool) *ScriptedSource {
	return &ScriptedSource{Steps: steps, Interval: interval, Loop: loop}
}

func (s *ScriptedSource) Next(ctx context.Context) (core.LandmarkFrame, error) {
	if len(s.Steps) == 0 || (!s.Loop && s.pos >= len(s.Steps)) {
		s.stop()
		return core.LandmarkFrame{}, io.EOF
	}
	if s.Interval > 0 {
		if s.ticker == nil {
			s.ticker = time.NewTicker(s.Interval)
		}
		select {
		case <-ctx.Done():
			s.stop()
			return core.LandmarkFrame{}, ctx.Err()
		case <-s.ticker.C:
		}
	} else if err := ctx.Err(); err != nil {
		return core.LandmarkFrame{}, err
	}

	step := s.Steps[s.pos%len(s.Steps)]
	s.pos++
	return Pose(step.Gesture, step.Wrist), nil
}

func (s *ScriptedSource) stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// DemoScript cycles through every target shape with idle gaps in between.
func DemoScript(hold int) []Step {
	var steps []Step
	add := func(g core.Gesture, x, y float32) {
		for i := 0; i < hold; i++ {
			steps = append(steps, Step{Gesture: g, Wrist: core.Landmark{X: x, Y: y}})
		}
	}
	add(core.GestureNone, 0.5, 0.5)
	add(core.GesturePeace, 0.45, 0.6)
	add(core.GestureRock, 0.55, 0.6)
	add(core.GestureFist, 0.5, 0.65)
	add(core.GestureLike, 0.4, 0.55)
	add(core.GestureDetected, 0.6, 0.5)
	return steps
}
