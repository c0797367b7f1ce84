package gesture

import "github.com/gekko3d/morphcloud/cloud/core"

// Pose builds a synthetic hand whose finger predicates classify as g, with the
// wrist at the given normalized position. GestureNone yields a no-hand frame.
func Pose(g core.Gesture, wrist core.Landmark) core.LandmarkFrame {
	var f Fingers
	switch g {
	case core.GestureNone:
		return core.NoHand()
	case core.GesturePeace:
		f = Fingers{Index: true, Middle: true}
	case core.GestureRock:
		f = Fingers{Index: true, Pinky: true}
	case core.GestureLike:
		f = Fingers{Thumb: true}
	case core.GestureFist:
	case core.GestureDetected:
		// Open palm: all fingers up matches none of the poses.
		f = Fingers{Index: true, Middle: true, Pinky: true, Thumb: true}
	}
	return FromFingers(f, wrist)
}

// FromFingers lays out a complete 21-landmark hand with the given fingers extended.
func FromFingers(f Fingers, wrist core.Landmark) core.LandmarkFrame {
	lm := make([]core.Landmark, core.HandLandmarkCount)
	for i := range lm {
		lm[i] = core.Landmark{X: wrist.X, Y: wrist.Y - 0.1}
	}
	lm[core.LandmarkWrist] = wrist

	finger := func(tip, joint int, dx float32, up bool) {
		jointY := wrist.Y - 0.15
		tipY := jointY + 0.05
		if up {
			tipY = jointY - 0.1
		}
		lm[joint] = core.Landmark{X: wrist.X + dx, Y: jointY}
		lm[tip] = core.Landmark{X: wrist.X + dx, Y: tipY}
	}
	finger(core.LandmarkThumbTip, core.LandmarkThumbMCP, -0.08, f.Thumb)
	finger(core.LandmarkIndexTip, core.LandmarkIndexPIP, -0.03, f.Index)
	finger(core.LandmarkMiddleTip, core.LandmarkMiddlePIP, 0, f.Middle)
	finger(core.LandmarkPinkyTip, core.LandmarkPinkyPIP, 0.06, f.Pinky)

	return core.LandmarkFrame{Hand: true, Landmarks: lm}
}
