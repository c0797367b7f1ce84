package morphcloud

import (
	"math/rand/v2"

	"github.com/gekko3d/morphcloud/cloud/shapes"
)

// ShapesModule generates the morph targets for the session and regenerates
// them whenever the viewport changes size.
type ShapesModule struct {
	// Rasterizer renders text shapes. Nil selects the embedded bold font.
	Rasterizer shapes.Rasterizer
}

type shapesSync struct {
	seen uint64
}

func (mod ShapesModule) Install(app *App, cmd *Commands) {
	cfg := MustResource[Config](app, "ShapesModule")
	vp := MustResource[Viewport](app, "ShapesModule")

	r := mod.Rasterizer
	if r == nil {
		fr, err := shapes.NewFontRasterizer(nil)
		if err != nil {
			panic(err)
		}
		r = fr
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}

	tier := cfg.ResolvedTier()
	lib := shapes.NewLibrary(tier.ParticleCount, r, rng, app.Logger())
	if _, err := lib.Regenerate(shapes.Responsive(vp.Camera, tier)); err != nil {
		panic(err)
	}
	cmd.AddResources(lib, &shapesSync{seen: vp.Version})

	app.UseSystem(
		System(regenerateShapesSystem).
			InStage(PreUpdate),
	)
}

// regenerateShapesSystem rebuilds every shape once per batch of resizes. On
// failure the previous generation stays current.
func regenerateShapesSystem(vp *Viewport, st *shapesSync, lib *shapes.Library, cfg *Config, cmd *Commands) {
	if vp.Version == st.seen {
		return
	}
	st.seen = vp.Version
	if _, err := lib.Regenerate(shapes.Responsive(vp.Camera, cfg.ResolvedTier())); err != nil {
		cmd.Logger().Errorf("Shape regeneration for %dx%d failed: %v", vp.Width, vp.Height, err)
	}
}
