package shapes

import (
	"image"
	"testing"

	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T, n int) *Library {
	t.Helper()
	dots := []image.Point{{100, 60}, {102, 60}, {200, 80}}
	return NewLibrary(n, dotRaster{dots: dots}, seeded(), nil)
}

func TestLibrary_CurrentBeforeRegenerate(t *testing.T) {
	lib := testLibrary(t, 10)
	assert.Nil(t, lib.Current())

	target, ok := lib.Current().Target(core.GesturePeace)
	assert.False(t, ok)
	assert.Nil(t, target)
}

func TestLibrary_RegeneratePublishes(t *testing.T) {
	lib := testLibrary(t, 64)

	s, err := lib.Regenerate(Scale{Text: 0.1, Shape: 1})
	require.NoError(t, err)
	require.Same(t, s, lib.Current())
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, uint64(1), s.Generation)

	for _, set := range []*core.PointSet{s.Text[0], s.Text[1], s.Text[2], s.Planet, s.Cloud} {
		assert.Equal(t, 64, set.Len())
	}

	s2, err := lib.Regenerate(Scale{Text: 0.2, Shape: 0.5})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s2.Generation)
	assert.NotEqual(t, s.ID, s2.ID)
	assert.Same(t, s2, lib.Current())
}

func TestLibrary_SupersededGenerationIsDropped(t *testing.T) {
	lib := testLibrary(t, 16)
	newer := &Shapes{ID: "newer", Generation: 100}
	lib.current.Store(newer)

	got, err := lib.Regenerate(Scale{Text: 1, Shape: 1})
	require.NoError(t, err)
	assert.Same(t, newer, got)
	assert.Same(t, newer, lib.Current())
}

func TestLibrary_RegenerateErrorKeepsPrevious(t *testing.T) {
	lib := testLibrary(t, 16)
	prev, err := lib.Regenerate(Scale{Text: 1, Shape: 1})
	require.NoError(t, err)

	lib.rasterizer = dotRaster{}
	_, err = lib.Regenerate(Scale{Text: 1, Shape: 1})
	require.ErrorIs(t, err, ErrEmptyRaster)
	assert.Same(t, prev, lib.Current())
}

func TestShapes_Target(t *testing.T) {
	lib := testLibrary(t, 8)
	s, err := lib.Regenerate(Scale{Text: 1, Shape: 1})
	require.NoError(t, err)

	tests := []struct {
		gesture core.Gesture
		want    *core.PointSet
		ok      bool
	}{
		{core.GesturePeace, s.Text[0], true},
		{core.GestureRock, s.Text[1], true},
		{core.GestureFist, s.Text[2], true},
		{core.GestureLike, s.Planet, true},
		{core.GestureNone, nil, false},
		{core.GestureDetected, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.gesture.String(), func(t *testing.T) {
			got, ok := s.Target(tt.gesture)
			assert.Equal(t, tt.ok, ok)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tt.want, got)
		})
	}
}

func TestResponsive(t *testing.T) {
	cam := core.DefaultCamera().WithViewport(1920, 1080)
	width, _ := cam.VisibleSize()

	s := Responsive(cam, core.TierDesktop)
	assert.InDelta(t, 0.8*width, s.Text*CanvasWidth, 1e-3)
	assert.InDelta(t, 1.0, s.Shape, 1e-6)

	portrait := Responsive(core.DefaultCamera().WithViewport(400, 900), core.TierMobile)
	pw, _ := core.DefaultCamera().WithViewport(400, 900).VisibleSize()
	require.Less(t, pw, float32(PlanetSpan))
	assert.InDelta(t, 0.6*pw/PlanetSpan, portrait.Shape, 1e-5)
	assert.Less(t, portrait.Text, s.Text)
}
