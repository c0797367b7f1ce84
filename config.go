package morphcloud

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/gekko3d/morphcloud/cloud/gesture"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	FovY     float32 `yaml:"fov_y"`
	Distance float32 `yaml:"distance"`
}

type GestureConfig struct {
	// MinDwell is the number of consecutive identical classifications required
	// before a gesture change is published. 0 publishes every change.
	MinDwell int     `yaml:"min_dwell"`
	Decay    float32 `yaml:"decay"`
	Range    float32 `yaml:"range"`
}

type Config struct {
	Tier string `yaml:"tier"`
	// ParticleCount overrides the tier's particle count when non-zero.
	ParticleCount int     `yaml:"particle_count"`
	PointSize     float32 `yaml:"point_size"`
	// WallClock advances animation time from elapsed time instead of per frame.
	WallClock bool          `yaml:"wall_clock"`
	Seed      uint64        `yaml:"seed"`
	Debug     bool          `yaml:"debug"`
	Window    WindowConfig  `yaml:"window"`
	Camera    CameraConfig  `yaml:"camera"`
	Gesture   GestureConfig `yaml:"gesture"`
}

func DefaultConfig() Config {
	cam := core.DefaultCamera()
	return Config{
		Tier: core.TierDesktop.Name,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "morphcloud",
		},
		Camera: CameraConfig{
			FovY:     cam.FovY,
			Distance: cam.Distance,
		},
		Gesture: GestureConfig{
			Decay: gesture.DefaultDecay,
			Range: gesture.DefaultRange,
		},
	}
}

// LoadConfig reads a yaml file over DefaultConfig. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, ok := core.TierByName(c.Tier); !ok {
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidConfig, c.Tier)
	}
	if c.ParticleCount < 0 {
		return fmt.Errorf("%w: particle_count %d", ErrInvalidConfig, c.ParticleCount)
	}
	if c.PointSize < 0 {
		return fmt.Errorf("%w: point_size %v", ErrInvalidConfig, c.PointSize)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("%w: fov_y %v", ErrInvalidConfig, c.Camera.FovY)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("%w: camera distance %v", ErrInvalidConfig, c.Camera.Distance)
	}
	if c.Gesture.MinDwell < 0 {
		return fmt.Errorf("%w: min_dwell %d", ErrInvalidConfig, c.Gesture.MinDwell)
	}
	if c.Gesture.Decay <= 0 || c.Gesture.Decay >= 1 {
		return fmt.Errorf("%w: decay %v must be in (0,1)", ErrInvalidConfig, c.Gesture.Decay)
	}
	return nil
}

// ResolvedTier is the configured tier with overrides applied.
func (c Config) ResolvedTier() core.Tier {
	tier, ok := core.TierByName(c.Tier)
	if !ok {
		tier = core.TierDesktop
	}
	if c.ParticleCount > 0 {
		tier.ParticleCount = c.ParticleCount
	}
	if c.PointSize > 0 {
		tier.PointSize = c.PointSize
	}
	return tier
}

func (c Config) CameraFor(width, height int) core.Camera {
	cam := core.DefaultCamera()
	cam.FovY = c.Camera.FovY
	cam.Distance = c.Camera.Distance
	return cam.WithViewport(width, height)
}

// NewClassifier builds a classifier with the configured tuning.
func (c Config) NewClassifier() *gesture.Classifier {
	cl := gesture.NewClassifier()
	if c.Gesture.Decay > 0 {
		cl.Decay = c.Gesture.Decay
	}
	if c.Gesture.Range > 0 {
		cl.Range = c.Gesture.Range
	}
	cl.SetMinDwell(c.Gesture.MinDwell)
	return cl
}
