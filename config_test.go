package morphcloud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "morphcloud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, core.TierDesktop, cfg.ResolvedTier())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tier: mobile
particle_count: 5000
wall_clock: true
window:
  width: 800
  height: 600
gesture:
  min_dwell: 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mobile", cfg.Tier)
	assert.True(t, cfg.WallClock)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "morphcloud", cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, float32(75), cfg.Camera.FovY)

	tier := cfg.ResolvedTier()
	assert.Equal(t, 5000, tier.ParticleCount)
	assert.Equal(t, core.TierMobile.ScaleFactor, tier.ScaleFactor)
	assert.Equal(t, core.TierMobile.PointSize, tier.PointSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "tier: [unclosed"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "tier: tablet\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown tier", func(c *Config) { c.Tier = "watch" }},
		{"negative particles", func(c *Config) { c.ParticleCount = -1 }},
		{"negative point size", func(c *Config) { c.PointSize = -0.1 }},
		{"zero window", func(c *Config) { c.Window.Width = 0 }},
		{"flat fov", func(c *Config) { c.Camera.FovY = 180 }},
		{"camera at origin", func(c *Config) { c.Camera.Distance = 0 }},
		{"negative dwell", func(c *Config) { c.Gesture.MinDwell = -2 }},
		{"no decay", func(c *Config) { c.Gesture.Decay = 0 }},
		{"full decay", func(c *Config) { c.Gesture.Decay = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_NewClassifier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gesture.Decay = 0.1
	cfg.Gesture.Range = 20

	c := cfg.NewClassifier()
	assert.Equal(t, float32(0.1), c.Decay)
	assert.Equal(t, float32(20), c.Range)
}

func TestConfig_CameraFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Distance = 80

	cam := cfg.CameraFor(1000, 500)
	assert.Equal(t, float32(80), cam.Distance)
	assert.Equal(t, float32(2), cam.Aspect)
}
