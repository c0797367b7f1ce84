package morphcloud

import (
	"slices"

	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/gekko3d/morphcloud/cloud/gesture"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Capture runs right after Prelude. Input is sampled and landmark frames are
// posted there, so the gesture drain in PreUpdate sees them the same frame.
var Capture = Stage{Name: "Capture"}

func useCaptureStage(app *App) {
	if slices.ContainsFunc(app.stages, func(s Stage) bool { return s.Name == Capture.Name }) {
		return
	}
	app.UseStage(Capture, AfterStage(Prelude))
}

// Input is the per-frame keyboard and cursor snapshot.
type Input struct {
	Pressed map[glfw.Key]bool

	// Cursor position normalized to the window, 0..1 from the top-left.
	CursorX, CursorY float32
	Hovered          bool
}

func (in *Input) capture(win *glfw.Window) {
	if in.Pressed == nil {
		in.Pressed = make(map[glfw.Key]bool, len(simulatorKeys))
	}
	for _, k := range simulatorKeys {
		in.Pressed[k.key] = win.GetKey(k.key) == glfw.Press
	}

	w, h := win.GetSize()
	x, y := win.GetCursorPos()
	in.Hovered = w > 0 && h > 0 && x >= 0 && y >= 0 && x <= float64(w) && y <= float64(h)
	if w > 0 && h > 0 {
		in.CursorX = float32(x / float64(w))
		in.CursorY = float32(y / float64(h))
	}
}

var simulatorKeys = []struct {
	key     glfw.Key
	gesture core.Gesture
}{
	{glfw.Key1, core.GesturePeace},
	{glfw.Key2, core.GestureRock},
	{glfw.Key3, core.GestureFist},
	{glfw.Key4, core.GestureLike},
	{glfw.Key5, core.GestureDetected},
}

// SimulatedFrame turns the input snapshot into a landmark frame: a held number
// key poses the hand, the cursor places the wrist. Nothing held means no hand.
func SimulatedFrame(in *Input) core.LandmarkFrame {
	for _, k := range simulatorKeys {
		if in.Pressed[k.key] {
			wrist := core.Landmark{X: 0.5, Y: 0.5}
			if in.Hovered {
				wrist = core.Landmark{X: in.CursorX, Y: in.CursorY}
			}
			return gesture.Pose(k.gesture, wrist)
		}
	}
	return core.NoHand()
}

// HandSimulatorModule stands in for a camera tracker. Every frame it feeds a
// landmark frame built from the keyboard and cursor through a classifier into
// the gesture mailbox.
type HandSimulatorModule struct{}

type handSimulator struct {
	classifier *gesture.Classifier
}

func (mod HandSimulatorModule) Install(app *App, cmd *Commands) {
	cfg := MustResource[Config](app, "HandSimulatorModule")
	MustResource[gesture.Mailbox](app, "HandSimulatorModule")
	if _, ok := Resource[Input](app); !ok {
		cmd.AddResources(&Input{})
	}
	cmd.AddResources(&handSimulator{classifier: cfg.NewClassifier()})
	useCaptureStage(app)
	app.UseSystem(
		System(handSimulatorSystem).
			InStage(Capture),
	)
	app.Logger().Infof("Hand simulator: hold 1 peace, 2 rock, 3 fist, 4 like, 5 open hand; the cursor moves the wrist")
}

func handSimulatorSystem(sim *handSimulator, input *Input, box *gesture.Mailbox) {
	box.Post(sim.classifier.Handle(SimulatedFrame(input)))
}
