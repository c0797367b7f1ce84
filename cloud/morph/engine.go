package morph

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/gekko3d/morphcloud/cloud/core"
)

const (
	// DefaultSmoothing is the fraction of the remaining distance covered per frame.
	DefaultSmoothing = 0.08
	// DefaultDriftAmplitude bounds the idle per-axis wobble.
	DefaultDriftAmplitude = 0.04
)

var ErrLengthMismatch = errors.New("point set length does not match particle buffer")

// Engine owns the live particle buffer and advances it one frame at a time.
// The buffer is allocated once; Step does not allocate.
type Engine struct {
	Smoothing      float32
	DriftAmplitude float32

	buf []core.Point3
}

// New allocates a buffer of initial.Len() particles starting at initial's positions.
func New(initial *core.PointSet) *Engine {
	e := &Engine{
		Smoothing:      DefaultSmoothing,
		DriftAmplitude: DefaultDriftAmplitude,
		buf:            make([]core.Point3, initial.Len()),
	}
	initial.CopyTo(e.buf)
	return e
}

func (e *Engine) Len() int { return len(e.buf) }

// Positions exposes the live buffer. Callers must treat it as read-only.
func (e *Engine) Positions() []core.Point3 { return e.buf }

// Packed returns the buffer as tightly packed x,y,z floats without copying.
func (e *Engine) Packed() []float32 {
	if len(e.buf) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&e.buf[0])), len(e.buf)*3)
}

// Step advances every particle. With a target the buffer approaches it
// exponentially; without one it approaches idle and wobbles around it.
func (e *Engine) Step(target, idle *core.PointSet, t float32) error {
	if target != nil {
		if target.Len() != len(e.buf) {
			return fmt.Errorf("target has %d points, buffer %d: %w", target.Len(), len(e.buf), ErrLengthMismatch)
		}
		e.approach(target)
		return nil
	}
	if idle.Len() != len(e.buf) {
		return fmt.Errorf("idle set has %d points, buffer %d: %w", idle.Len(), len(e.buf), ErrLengthMismatch)
	}
	e.approach(idle)
	e.drift(t)
	return nil
}

func (e *Engine) approach(target *core.PointSet) {
	s := e.Smoothing
	for i := range e.buf {
		p := &e.buf[i]
		tp := target.At(i)
		p[0] += (tp[0] - p[0]) * s
		p[1] += (tp[1] - p[1]) * s
		p[2] += (tp[2] - p[2]) * s
	}
}

// drift phases each axis by its flat buffer index so neighbours move out of step.
func (e *Engine) drift(t float32) {
	a := e.DriftAmplitude
	for i := range e.buf {
		p := &e.buf[i]
		j := float32(3 * i)
		p[0] += math32.Sin(t+j) * a
		p[1] += math32.Sin(t+j+1) * a
		p[2] += math32.Sin(t+j+2) * a
	}
}
