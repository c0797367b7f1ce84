package morphcloud

import (
	"fmt"

	"github.com/gekko3d/morphcloud/cloud/morph"
	"github.com/gekko3d/morphcloud/cloud/present"
	"github.com/gekko3d/morphcloud/cloud/shapes"
)

// MorphModule owns the particle buffer, seeded with the dispersed cloud.
type MorphModule struct{}

func (mod MorphModule) Install(app *App, cmd *Commands) {
	lib := MustResource[shapes.Library](app, "MorphModule")
	MustResource[AnimationState](app, "MorphModule")

	engine := morph.New(lib.Current().Cloud)
	if engine.Len() != lib.N() {
		panic(fmt.Sprintf("MorphModule: particle buffer has %d points, shapes have %d", engine.Len(), lib.N()))
	}
	cmd.AddResources(engine)
	app.UseSystem(
		System(morphSystem).
			InStage(Update),
	)
}

func morphSystem(engine *morph.Engine, lib *shapes.Library, anim *AnimationState, cmd *Commands) {
	current := lib.Current()
	target, _ := current.Target(anim.Gesture.Gesture)
	if err := engine.Step(target, current.Cloud, anim.Time); err != nil {
		cmd.Logger().Errorf("Morph step skipped: %v", err)
	}
}

// PresentationModule derives color, point size and offset from the gesture.
type PresentationModule struct{}

func (mod PresentationModule) Install(app *App, cmd *Commands) {
	cfg := MustResource[Config](app, "PresentationModule")
	MustResource[AnimationState](app, "PresentationModule")

	cmd.AddResources(present.NewAdapter(cfg.ResolvedTier().PointSize))
	app.UseSystem(
		System(presentationSystem).
			InStage(PostUpdate),
	)
}

func presentationSystem(adapter *present.Adapter, anim *AnimationState) {
	adapter.Update(anim.Gesture.Gesture, anim.Gesture.Displacement, anim.Time)
}
