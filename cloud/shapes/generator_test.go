package shapes

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/chewxy/math32"
	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dotRaster lights the given canvas pixels and nothing else.
type dotRaster struct {
	dots []image.Point
}

func (d dotRaster) Rasterize(text string, w, h int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, p := range d.dots {
		img.Set(p.X, p.Y, color.White)
	}
	return img, nil
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGenerator_TextCyclesSparseSamples(t *testing.T) {
	dots := []image.Point{{10, 10}, {20, 40}, {256, 64}, {300, 100}, {500, 2}}
	g := NewGenerator(23, dotRaster{dots: dots}, seeded())

	set, err := g.Text("X", 1)
	require.NoError(t, err)
	require.Equal(t, 23, set.Len())

	m := len(dots)
	for i := 0; i < set.Len(); i++ {
		assert.Equal(t, set.At(i%m), set.At(i), "point %d", i)
	}
}

func TestGenerator_TextCentersAndInvertsY(t *testing.T) {
	g := NewGenerator(2, dotRaster{dots: []image.Point{{256, 64}, {258, 60}}}, seeded())

	set, err := g.Text("X", 0.5)
	require.NoError(t, err)

	// Scan order is row-major, so the upper pixel comes first.
	assert.Equal(t, core.Point3{1, 2, 0}, set.At(0))
	assert.Equal(t, core.Point3{0, 0, 0}, set.At(1))
}

func TestGenerator_TextSkipsOffStridePixels(t *testing.T) {
	g := NewGenerator(4, dotRaster{dots: []image.Point{{11, 11}, {13, 7}}}, seeded())

	_, err := g.Text("X", 1)
	require.ErrorIs(t, err, ErrEmptyRaster)
}

func TestGenerator_TextEmptyRasterFails(t *testing.T) {
	g := NewGenerator(100, dotRaster{}, seeded())

	set, err := g.Text("☃", 1)
	require.ErrorIs(t, err, ErrEmptyRaster)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "☃")
}

func TestCycle_Empty(t *testing.T) {
	_, err := Cycle(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyRaster)
}

func TestGenerator_TextWithFontIsDeterministic(t *testing.T) {
	r, err := NewFontRasterizer(nil)
	require.NoError(t, err)

	for _, msg := range Messages {
		a, err := NewGenerator(9000, r, rand.New(rand.NewPCG(1, 1))).Text(msg, 0.2)
		require.NoError(t, err, msg)
		b, err := NewGenerator(9000, r, rand.New(rand.NewPCG(7, 7))).Text(msg, 0.2)
		require.NoError(t, err, msg)

		require.Equal(t, 9000, a.Len())
		for i := 0; i < a.Len(); i++ {
			if a.At(i) != b.At(i) {
				t.Fatalf("%q: point %d differs: %v vs %v", msg, i, a.At(i), b.At(i))
			}
		}
	}
}

func TestGenerator_PlanetCoreRadius(t *testing.T) {
	const n = 1000
	coreCount := int(n * PlanetCoreFraction)

	g := NewGenerator(n, nil, seeded())
	set, err := g.Planet(1.5)
	require.NoError(t, err)
	require.Equal(t, n, set.Len())

	for i := 0; i < coreCount; i++ {
		assert.InDelta(t, 15*1.5, set.At(i).Len(), 1e-3, "core point %d", i)
	}
	for i := coreCount; i < n; i++ {
		p := set.At(i)
		r := math32.Hypot(p.X(), p.Z())
		assert.GreaterOrEqual(t, r, float32(20*1.5-1e-3), "ring point %d", i)
		assert.LessOrEqual(t, r, float32(26*1.5+1e-3), "ring point %d", i)
		assert.LessOrEqual(t, math32.Abs(p.Y()), float32(0.3*1.5+1e-4), "ring point %d", i)
	}
}

func TestGenerator_PlanetRescalesOnResize(t *testing.T) {
	s1, s2 := float32(1.0), float32(0.6)
	a, err := NewGenerator(500, nil, seeded()).Planet(s1)
	require.NoError(t, err)
	b, err := NewGenerator(500, nil, seeded()).Planet(s2)
	require.NoError(t, err)

	p1, p2 := a.At(0), b.At(0)
	assert.InDelta(t, 15*s1, p1.Len(), 1e-4)
	assert.InDelta(t, 15*s2, p2.Len(), 1e-4)
	assert.True(t, p1.Normalize().ApproxEqualThreshold(p2.Normalize(), 1e-5), "direction changed: %v vs %v", p1, p2)
}

func TestGenerator_PlanetCoreIsDeterministic(t *testing.T) {
	const n = 800
	a, err := NewGenerator(n, nil, rand.New(rand.NewPCG(1, 1))).Planet(1)
	require.NoError(t, err)
	b, err := NewGenerator(n, nil, rand.New(rand.NewPCG(2, 2))).Planet(1)
	require.NoError(t, err)

	for i := 0; i < int(n*PlanetCoreFraction); i++ {
		assert.Equal(t, a.At(i), b.At(i))
	}
}

func TestGenerator_CloudBounds(t *testing.T) {
	set, err := NewGenerator(2000, nil, seeded()).Cloud()
	require.NoError(t, err)
	require.Equal(t, 2000, set.Len())
	for i := 0; i < set.Len(); i++ {
		for axis := 0; axis < 3; axis++ {
			v := set.At(i)[axis]
			if v < -CloudHalfExtent || v > CloudHalfExtent {
				t.Fatalf("point %d axis %d out of bounds: %v", i, axis, v)
			}
		}
	}
}

func TestGenerator_EveryShapeHasN(t *testing.T) {
	r, err := NewFontRasterizer(nil)
	require.NoError(t, err)

	for _, n := range []int{1, 7, 8000, 15000} {
		g := NewGenerator(n, r, seeded())
		for _, msg := range Messages {
			set, err := g.Text(msg, 0.2)
			require.NoError(t, err)
			assert.Equal(t, n, set.Len(), msg)
		}
		planet, err := g.Planet(1)
		require.NoError(t, err)
		assert.Equal(t, n, planet.Len())
		cloud, err := g.Cloud()
		require.NoError(t, err)
		assert.Equal(t, n, cloud.Len())
	}
}
