package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FovY     float32 // degrees
	Aspect   float32
	Distance float32
	Near     float32
	Far      float32
}

func DefaultCamera() Camera {
	return Camera{
		FovY:     75,
		Aspect:   16.0 / 9.0,
		Distance: 50,
		Near:     0.1,
		Far:      1000,
	}
}

// WithViewport returns a copy with the aspect ratio of a w×h viewport.
// Degenerate sizes leave the aspect unchanged.
func (c Camera) WithViewport(w, h int) Camera {
	if w > 0 && h > 0 {
		c.Aspect = float32(w) / float32(h)
	}
	return c
}

// VisibleSize returns the world-space width and height visible on the z=0 plane.
func (c Camera) VisibleSize() (width, height float32) {
	height = 2 * math32.Tan(mgl32.DegToRad(c.FovY)/2) * c.Distance
	return height * c.Aspect, height
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(
		mgl32.Vec3{0, 0, c.Distance},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
}

func (c Camera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}
