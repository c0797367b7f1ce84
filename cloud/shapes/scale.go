package shapes

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/morphcloud/cloud/core"
)

const (
	// TextFill is the fraction of the viewport width a text shape spans.
	TextFill = 0.8
	// PlanetSpan is the visible width, in world units, below which the planet starts shrinking.
	PlanetSpan = 60
)

// Scale carries the two responsive factors shapes are generated with.
type Scale struct {
	// Text is world units per text-canvas pixel.
	Text float32
	// Shape multiplies the parametric planet dimensions.
	Shape float32
}

// Responsive derives the scale for the current camera so text spans TextFill
// of the viewport and the planet stays inside narrow viewports.
func Responsive(cam core.Camera, tier core.Tier) Scale {
	width, _ := cam.VisibleSize()
	return Scale{
		Text:  TextFill * width / CanvasWidth,
		Shape: tier.ScaleFactor * math32.Min(1, width/PlanetSpan),
	}
}
