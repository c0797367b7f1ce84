package core

import "github.com/go-gl/mathgl/mgl32"

type Gesture int

const (
	GestureNone Gesture = iota
	GesturePeace
	GestureRock
	GestureLike
	GestureFist
	// GestureDetected means a hand is tracked but matches no known pose.
	GestureDetected
)

var gestureNames = [...]string{
	GestureNone:     "none",
	GesturePeace:    "peace",
	GestureRock:     "rock",
	GestureLike:     "like",
	GestureFist:     "fist",
	GestureDetected: "detected",
}

func (g Gesture) String() string {
	if g < 0 || int(g) >= len(gestureNames) {
		return "unknown"
	}
	return gestureNames[g]
}

// Tracked reports whether a hand was present when g was classified.
func (g Gesture) Tracked() bool {
	return g != GestureNone
}

// GestureState is what a landmark update publishes to the render loop.
// It is always replaced as a whole, never field by field.
type GestureState struct {
	Gesture      Gesture
	Displacement mgl32.Vec3
	// Seq increases by one for every landmark update that produced this value.
	Seq uint64
}
