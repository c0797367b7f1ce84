package morphcloud

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState owns the shared glfw window.
type WindowState struct {
	windowGlfw *glfw.Window
}

func (s *WindowState) Window() *glfw.Window {
	return s.windowGlfw
}

func createWindowState(width, height int, title string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // surface is driven by wgpu
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}
	return &WindowState{windowGlfw: win}
}

// PlatformWindowModule creates the window and keeps Viewport and Input in
// sync with it. Closing the window exits the app.
type PlatformWindowModule struct{}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}
	cfg := MustResource[Config](app, "PlatformWindowModule")
	vp := MustResource[Viewport](app, "PlatformWindowModule")

	ws := createWindowState(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	input := &Input{}
	cmd.AddResources(ws, input)

	// Framebuffer size can differ from the requested window size on HiDPI screens.
	vp.Resize(ws.windowGlfw.GetFramebufferSize())
	ws.windowGlfw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if vp.Resize(width, height) {
			app.Logger().Debugf("Framebuffer resized to %dx%d", width, height)
		}
	})
	app.Logger().Infof("Created window (%dx%d) '%s'", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)

	useCaptureStage(app)
	app.UseSystem(
		System(windowEventsSystem).
			InStage(Capture),
	)
	app.UseSystem(
		System(destroyWindowSystem).
			InStage(Finale).
			InState(OnExit(StateRunning)),
	)
}

func windowEventsSystem(s *WindowState, input *Input, cmd *Commands) {
	glfw.PollEvents()
	if s.windowGlfw.GetKey(glfw.KeyEscape) == glfw.Press {
		s.windowGlfw.SetShouldClose(true)
	}
	if s.windowGlfw.ShouldClose() {
		cmd.Exit()
		return
	}
	input.capture(s.windowGlfw)
}

func destroyWindowSystem(s *WindowState) {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}
