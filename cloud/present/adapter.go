package present

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/go-gl/mathgl/mgl32"
)

// VisualState is what the renderer needs besides positions. Recomputed every frame.
type VisualState struct {
	Color  mgl32.Vec3
	Size   float32
	Offset mgl32.Vec3
}

// Hex converts 0xRRGGBB to a linear 0..1 color triple.
func Hex(rgb uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(rgb>>16&0xff) / 255,
		float32(rgb>>8&0xff) / 255,
		float32(rgb&0xff) / 255,
	}
}

var (
	ColorBase = Hex(0xff88cc)
	ColorWarm = Hex(0xff3355)
	ColorCool = Hex(0x66ccff)
)

const (
	ColorBlend     = 0.1
	OffsetBlend    = 0.05
	PulseFrequency = 10
	PulseAmplitude = 0.05
)

// Adapter derives VisualState from the gesture, hand displacement and animation time.
type Adapter struct {
	BaseSize float32
	Base     mgl32.Vec3
	Warm     mgl32.Vec3
	Cool     mgl32.Vec3

	state VisualState
}

func NewAdapter(baseSize float32) *Adapter {
	return &Adapter{
		BaseSize: baseSize,
		Base:     ColorBase,
		Warm:     ColorWarm,
		Cool:     ColorCool,
		state: VisualState{
			Color: ColorBase,
			Size:  baseSize,
		},
	}
}

func (a *Adapter) State() VisualState { return a.state }

// Update eases the color and offset one frame toward their targets and returns the result.
func (a *Adapter) Update(g core.Gesture, displacement mgl32.Vec3, t float32) VisualState {
	target := a.Base
	size := a.BaseSize
	switch {
	case g == core.GestureLike:
		target = a.Warm
		size = a.BaseSize + math32.Sin(t*PulseFrequency)*PulseAmplitude
	case g.Tracked():
		target = a.Cool
	}

	a.state.Color = lerp(a.state.Color, target, ColorBlend)
	a.state.Size = size
	a.state.Offset = lerp(a.state.Offset, displacement, OffsetBlend)
	return a.state
}

func lerp(from, to mgl32.Vec3, f float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(f))
}
