package gesture

import (
	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultDecay is the fraction of the displacement removed per no-hand update.
	DefaultDecay = 0.05
	// DefaultRange maps the normalized image span onto world units.
	DefaultRange = 40
)

// Fingers holds the four "extended" predicates the classifier works from.
type Fingers struct {
	Index, Middle, Pinky, Thumb bool
}

// Extended evaluates the finger predicates. A finger is extended when its tip
// sits above its lower joint in image space. The frame must be complete.
func Extended(lm []core.Landmark) Fingers {
	above := func(tip, joint int) bool {
		return lm[tip].Y < lm[joint].Y
	}
	return Fingers{
		Index:  above(core.LandmarkIndexTip, core.LandmarkIndexPIP),
		Middle: above(core.LandmarkMiddleTip, core.LandmarkMiddlePIP),
		Pinky:  above(core.LandmarkPinkyTip, core.LandmarkPinkyPIP),
		Thumb:  above(core.LandmarkThumbTip, core.LandmarkThumbMCP),
	}
}

// Classify applies the pose table in priority order; the first match wins.
func Classify(f Fingers) core.Gesture {
	switch {
	case f.Index && f.Middle && !f.Pinky:
		return core.GesturePeace
	case f.Index && f.Pinky && !f.Middle:
		return core.GestureRock
	case f.Thumb && !f.Index && !f.Middle:
		return core.GestureLike
	case !f.Index && !f.Middle && !f.Pinky:
		return core.GestureFist
	}
	return core.GestureDetected
}

// Classifier turns landmark frames into gesture states. It is owned by the
// landmark producer and must not be shared between goroutines.
type Classifier struct {
	Decay float32
	Range float32

	state core.GestureState
	dwell dwell
}

func NewClassifier() *Classifier {
	return &Classifier{
		Decay: DefaultDecay,
		Range: DefaultRange,
	}
}

// SetMinDwell requires a new gesture to be seen on n consecutive frames before
// it is reported. Zero reports every frame's classification as is.
func (c *Classifier) SetMinDwell(n int) {
	c.dwell = dwell{min: n, stable: c.state.Gesture}
}

// State returns the last produced state.
func (c *Classifier) State() core.GestureState {
	return c.state
}

// Handle consumes one frame and returns the full replacement state.
func (c *Classifier) Handle(f core.LandmarkFrame) core.GestureState {
	next := core.GestureState{Seq: c.state.Seq + 1}

	if !f.Hand || len(f.Landmarks) == 0 {
		// Lost tracking: ease back to the origin instead of snapping.
		d := c.state.Displacement
		next.Displacement = d.Add(d.Mul(-c.Decay))
		next.Gesture = c.dwell.reset()
		c.state = next
		return next
	}

	wrist := f.Landmarks[core.LandmarkWrist]
	next.Displacement = mgl32.Vec3{
		(0.5 - wrist.X) * c.Range,
		(0.5 - wrist.Y) * c.Range,
		0,
	}

	raw := core.GestureDetected
	if f.Complete() {
		raw = Classify(Extended(f.Landmarks))
	}
	next.Gesture = c.dwell.filter(raw)
	c.state = next
	return next
}

// dwell suppresses gesture changes until the candidate has persisted.
type dwell struct {
	min       int
	stable    core.Gesture
	candidate core.Gesture
	count     int
}

func (d *dwell) filter(g core.Gesture) core.Gesture {
	if d.min <= 0 || g == d.stable {
		d.stable = g
		d.count = 0
		return g
	}
	if g != d.candidate {
		d.candidate = g
		d.count = 0
	}
	d.count++
	if d.count >= d.min {
		d.stable = g
		d.count = 0
	}
	return d.stable
}

func (d *dwell) reset() core.Gesture {
	d.stable = core.GestureNone
	d.candidate = core.GestureNone
	d.count = 0
	return core.GestureNone
}
