package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/gekko3d/morphcloud/cloud/present"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Host renders the particle cloud into a glfw window surface.
// It implements present.Sink.
type Host struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Points     *PointPass
	Camera     core.Camera
	ClearColor wgpu.Color

	// OnError receives upload failures, which Sink.Upload cannot return.
	OnError func(error)
}

var _ present.Sink = (*Host)(nil)

func NewHost(window *glfw.Window, cam core.Camera) (*Host, error) {
	h := &Host{
		Camera:     cam,
		ClearColor: wgpu.Color{R: 0.02, G: 0.01, B: 0.04, A: 1},
	}

	h.Instance = wgpu.CreateInstance(nil)
	h.Surface = h.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := h.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: h.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	h.Adapter = adapter

	h.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	h.Queue = h.Device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := h.Surface.GetCapabilities(adapter)
	h.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	h.Surface.Configure(adapter, h.Device, h.Config)
	h.Camera = h.Camera.WithViewport(width, height)

	h.Points, err = NewPointPass(h.Device, h.Config.Format)
	if err != nil {
		return nil, fmt.Errorf("point pass: %w", err)
	}
	return h, nil
}

func (h *Host) Upload(positions []float32, v present.VisualState) {
	u := PointUniforms{
		View:       h.Camera.View(),
		Proj:       h.Camera.Projection(),
		Color:      [4]float32{v.Color.X(), v.Color.Y(), v.Color.Z(), 0.9},
		OffsetSize: [4]float32{v.Offset.X(), v.Offset.Y(), v.Offset.Z(), v.Size},
	}
	if err := h.Points.Update(h.Queue, positions, u); err != nil {
		if h.OnError != nil {
			h.OnError(fmt.Errorf("point upload: %w", err))
			return
		}
		fmt.Printf("ERROR: point upload failed: %v\n", err)
	}
}

func (h *Host) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	h.Config.Width = uint32(width)
	h.Config.Height = uint32(height)
	h.Surface.Configure(h.Adapter, h.Device, h.Config)
	h.Camera = h.Camera.WithViewport(width, height)
}

func (h *Host) Render() error {
	next, err := h.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := h.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: h.ClearColor,
		}},
	})
	h.Points.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	h.Queue.Submit(cmd)
	h.Surface.Present()
	return nil
}

func (h *Host) Release() {
	if h.Points != nil {
		h.Points.Release()
	}
	if h.Surface != nil {
		h.Surface.Release()
	}
	if h.Device != nil {
		h.Device.Release()
	}
	if h.Adapter != nil {
		h.Adapter.Release()
	}
	if h.Instance != nil {
		h.Instance.Release()
	}
}
