package core

// Landmark is a normalized 2-D hand joint position in image space:
// x grows to the right, y grows downward, both nominally in [0, 1].
type Landmark struct {
	X, Y float32
}

// Indices into the 21-point hand model.
const (
	LandmarkWrist     = 0
	LandmarkThumbMCP  = 2
	LandmarkThumbTip  = 4
	LandmarkIndexPIP  = 6
	LandmarkIndexTip  = 8
	LandmarkMiddlePIP = 10
	LandmarkMiddleTip = 12
	LandmarkPinkyPIP  = 18
	LandmarkPinkyTip  = 20

	HandLandmarkCount = 21
)

// LandmarkFrame is one tracking result. Hand is false when the detector saw no hand.
type LandmarkFrame struct {
	Hand      bool
	Landmarks []Landmark
}

// NoHand is the frame a detector reports when it loses the hand.
func NoHand() LandmarkFrame {
	return LandmarkFrame{}
}

// Complete reports whether the frame carries every landmark the classifier reads.
func (f LandmarkFrame) Complete() bool {
	return f.Hand && len(f.Landmarks) >= HandLandmarkCount
}
