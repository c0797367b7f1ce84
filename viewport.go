package morphcloud

import (
	"github.com/gekko3d/morphcloud/cloud/core"
)

// Viewport is the current framebuffer size and the camera fitted to it.
// Resize may be called many times per frame; consumers compare Version with
// the last version they handled and react once.
type Viewport struct {
	Width   int
	Height  int
	Camera  core.Camera
	Version uint64
}

// Resize records a new framebuffer size. Zero sizes (minimized windows) and
// unchanged sizes are ignored.
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == v.Width && height == v.Height {
		return false
	}
	v.Width, v.Height = width, height
	v.Camera = v.Camera.WithViewport(width, height)
	v.Version++
	return true
}

// ConfigModule publishes the session Config and the initial Viewport.
type ConfigModule struct {
	Config Config
}

func (mod ConfigModule) Install(app *App, cmd *Commands) {
	cfg := mod.Config
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	cmd.AddResources(
		&cfg,
		&Viewport{
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Camera: cfg.CameraFor(cfg.Window.Width, cfg.Window.Height),
		},
	)
	tier := cfg.ResolvedTier()
	app.Logger().Infof("Session tier %s: %d particles, point size %.2f", tier.Name, tier.ParticleCount, tier.PointSize)
}
