package gpu

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/gekko3d/morphcloud/cloud/shaders"
	"github.com/stretchr/testify/assert"
)

func TestPointUniformsLayout(t *testing.T) {
	// Two mat4x4<f32> followed by two vec4<f32>, no padding.
	assert.Equal(t, uintptr(160), unsafe.Sizeof(PointUniforms{}))
	assert.Equal(t, uintptr(128), unsafe.Offsetof(PointUniforms{}.Color))
	assert.Equal(t, uintptr(144), unsafe.Offsetof(PointUniforms{}.OffsetSize))
	assert.Equal(t, uintptr(8), unsafe.Sizeof(CornerVertex{}))
}

func TestPointShaderEntryPoints(t *testing.T) {
	for _, entry := range []string{"fn vs_main", "fn fs_main", "var<uniform> frame: Frame"} {
		assert.True(t, strings.Contains(shaders.PointsWGSL, entry), entry)
	}
}
