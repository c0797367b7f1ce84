package morphcloud

import (
	"github.com/gekko3d/morphcloud/cloud/gpu"
	"github.com/gekko3d/morphcloud/cloud/morph"
	"github.com/gekko3d/morphcloud/cloud/present"
)

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererHeadless RendererName = "headless"
)

// RenderTarget is the Sink the render system pushes each frame into.
type RenderTarget struct {
	Sink present.Sink
	seen uint64
}

// PointRendererModule draws the cloud into the platform window with WebGPU.
type PointRendererModule struct{}

func (mod PointRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererWGPU)
	ws := MustResource[WindowState](app, "PointRendererModule")
	vp := MustResource[Viewport](app, "PointRendererModule")

	host, err := gpu.NewHost(ws.Window(), vp.Camera)
	if err != nil {
		panic(err)
	}
	log := app.Logger()
	host.OnError = func(err error) { log.Errorf("%v", err) }

	installRenderTarget(app, cmd, host, vp)
	app.UseSystem(
		System(func() { host.Release() }).
			InStage(Render).
			InState(OnExit(StateRunning)),
	)
	log.Infof("Renderer selected: %s", RendererWGPU)
}

// HeadlessRendererModule renders into an arbitrary Sink, a present.Recorder
// when none is given.
type HeadlessRendererModule struct {
	Sink present.Sink
}

func (mod HeadlessRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererHeadless)
	sink := mod.Sink
	if sink == nil {
		sink = &present.Recorder{}
	}
	vp := MustResource[Viewport](app, "HeadlessRendererModule")
	sink.Resize(vp.Width, vp.Height)
	installRenderTarget(app, cmd, sink, vp)
}

func installRenderTarget(app *App, cmd *Commands, sink present.Sink, vp *Viewport) {
	MustResource[morph.Engine](app, "renderer")
	MustResource[present.Adapter](app, "renderer")

	cmd.AddResources(&RenderTarget{Sink: sink, seen: vp.Version})
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func renderSystem(target *RenderTarget, vp *Viewport, engine *morph.Engine, adapter *present.Adapter, cmd *Commands) {
	if vp.Version != target.seen {
		target.seen = vp.Version
		target.Sink.Resize(vp.Width, vp.Height)
	}
	target.Sink.Upload(engine.Packed(), adapter.State())
	if err := target.Sink.Render(); err != nil {
		cmd.Logger().Warnf("Frame %dx%d skipped: %v", vp.Width, vp.Height, err)
	}
}
