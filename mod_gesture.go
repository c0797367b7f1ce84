package morphcloud

import (
	"context"
	"errors"

	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/gekko3d/morphcloud/cloud/gesture"
)

// AnimationState is the per-frame animation context: the gesture state drained
// from the mailbox and the clock reading every frame system works from.
type AnimationState struct {
	Gesture core.GestureState
	Time    float32
	Frame   uint64
}

// GestureModule installs the gesture mailbox and drains it once per frame.
// With a Source, landmark frames are classified on their own goroutine for as
// long as the app is running.
type GestureModule struct {
	Source gesture.Source
}

type landmarkPump struct {
	cancel context.CancelFunc
	done   chan error
}

func (mod GestureModule) Install(app *App, cmd *Commands) {
	cfg := MustResource[Config](app, "GestureModule")
	MustResource[FrameClock](app, "GestureModule")

	box := &gesture.Mailbox{}
	cmd.AddResources(box, &AnimationState{})

	app.UseSystem(
		System(drainGestureSystem).
			InStage(PreUpdate),
	)

	if mod.Source == nil {
		return
	}
	pump := &landmarkPump{}
	cmd.AddResources(pump)
	src := mod.Source
	app.UseSystem(
		System(func(p *landmarkPump, box *gesture.Mailbox, cmd *Commands) {
			ctx, cancel := context.WithCancel(context.Background())
			p.cancel = cancel
			p.done = make(chan error, 1)
			classifier := cfg.NewClassifier()
			log := cmd.Logger()
			go func() {
				err := gesture.Pump(ctx, src, classifier, box)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Warnf("Landmark pump stopped: %v", err)
				}
				p.done <- err
			}()
			log.Infof("Landmark pump started")
		}).
			InStage(Prelude).
			InState(OnEnter(StateRunning)),
	)
	app.UseSystem(
		System(stopLandmarkPumpSystem).
			InStage(Finale).
			InState(OnExit(StateRunning)),
	)
}

func drainGestureSystem(box *gesture.Mailbox, clock *FrameClock, anim *AnimationState, cmd *Commands) {
	next := box.Latest(anim.Gesture)
	if next.Gesture != anim.Gesture.Gesture {
		cmd.Logger().Debugf("Gesture %s -> %s", anim.Gesture.Gesture, next.Gesture)
	}
	anim.Gesture = next
	anim.Time = clock.T
	anim.Frame = clock.Frame
}

// stopLandmarkPumpSystem cancels the pump and waits for its goroutine, which
// has already reported any failure.
func stopLandmarkPumpSystem(p *landmarkPump) {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}
