package shapes

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/gekko3d/morphcloud/cloud/core"
)

const (
	CanvasWidth  = 512
	CanvasHeight = 128
	// SampleStride is the grid step, in pixels, used to scan the text bitmap.
	SampleStride = 2
	// ForegroundThreshold is the red channel level (0..255) above which a pixel is text.
	ForegroundThreshold = 128

	CloudHalfExtent = 30

	PlanetCoreFraction = 0.4
	PlanetCoreRadius   = 15
	PlanetRingInner    = 20
	PlanetRingOuter    = 26
	PlanetRingJitter   = 0.3
)

var ErrEmptyRaster = errors.New("text raster has no foreground pixels")

// Messages are the text targets, in the order they are exposed by Shapes.Text.
var Messages = [3]string{"WILL YOU", "BE MY", "VALENTINE?"}

type Generator struct {
	N          int
	Rasterizer Rasterizer
	Rand       *rand.Rand
}

func NewGenerator(n int, r Rasterizer, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{N: n, Rasterizer: r, Rand: rng}
}

// Text rasterizes s and returns exactly g.N points, cycling the sampled
// foreground positions when there are fewer samples than particles.
func (g *Generator) Text(s string, scale float32) (*core.PointSet, error) {
	img, err := g.Rasterizer.Rasterize(s, CanvasWidth, CanvasHeight)
	if err != nil {
		return nil, fmt.Errorf("rasterize %q: %w", s, err)
	}
	samples := SampleForeground(img, SampleStride, scale)
	if len(samples) == 0 {
		return nil, fmt.Errorf("text %q: %w", s, ErrEmptyRaster)
	}
	return Cycle(samples, g.N)
}

// SampleForeground scans img on an even stride grid and returns the centered,
// y-inverted, scaled coordinates of every foreground sample.
func SampleForeground(img image.Image, stride int, scale float32) []core.Point3 {
	b := img.Bounds()
	cx := float32(b.Min.X) + float32(b.Dx())/2
	cy := float32(b.Min.Y) + float32(b.Dy())/2

	var out []core.Point3
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			r, _, _, _ := img.At(x, y).RGBA()
			if r>>8 <= ForegroundThreshold {
				continue
			}
			out = append(out, core.Point3{
				(float32(x) - cx) * scale,
				-(float32(y) - cy) * scale,
				0,
			})
		}
	}
	return out
}

// Cycle expands samples to n points, point i being samples[i%len(samples)].
// Repeated positions are expected when len(samples) < n.
func Cycle(samples []core.Point3, n int) (*core.PointSet, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyRaster
	}
	b := core.NewPointSetBuilder(n)
	for i := 0; i < n; i++ {
		b.Set(i, samples[i%len(samples)])
	}
	return b.Build()
}

// Planet returns a Fibonacci-sphere core surrounded by a flat, randomly filled ring.
func (g *Generator) Planet(scale float32) (*core.PointSet, error) {
	b := core.NewPointSetBuilder(g.N)
	coreCount := int(float32(g.N) * PlanetCoreFraction)

	radius := PlanetCoreRadius * scale
	spiral := math32.Sqrt(float32(coreCount) * math32.Pi)
	for i := 0; i < coreCount; i++ {
		phi := math32.Acos(-1 + 2*float32(i)/float32(coreCount))
		theta := spiral * phi
		sinPhi := math32.Sin(phi)
		b.Set(i, core.Point3{
			radius * math32.Cos(theta) * sinPhi,
			radius * math32.Sin(theta) * sinPhi,
			radius * math32.Cos(phi),
		})
	}

	for i := coreCount; i < g.N; i++ {
		angle := g.Rand.Float32() * 2 * math32.Pi
		r := (PlanetRingInner + g.Rand.Float32()*(PlanetRingOuter-PlanetRingInner)) * scale
		jitter := (g.Rand.Float32()*2 - 1) * PlanetRingJitter * scale
		b.Set(i, core.Point3{
			math32.Cos(angle) * r,
			jitter,
			math32.Sin(angle) * r,
		})
	}
	return b.Build()
}

// Cloud returns g.N points uniformly distributed in a cube centered on the origin.
func (g *Generator) Cloud() (*core.PointSet, error) {
	b := core.NewPointSetBuilder(g.N)
	for i := 0; i < g.N; i++ {
		b.Set(i, core.Point3{
			(g.Rand.Float32()*2 - 1) * CloudHalfExtent,
			(g.Rand.Float32()*2 - 1) * CloudHalfExtent,
			(g.Rand.Float32()*2 - 1) * CloudHalfExtent,
		})
	}
	return b.Build()
}
