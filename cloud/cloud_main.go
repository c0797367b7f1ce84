package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/morphcloud"
	"github.com/gekko3d/morphcloud/cloud/gesture"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a yaml config file")
	tier := flag.String("tier", "", "Device tier: desktop or mobile")
	particles := flag.Int("particles", 0, "Override the tier's particle count")
	demo := flag.Bool("demo", false, "Replay a scripted gesture sequence instead of the keyboard hand simulator")
	dwell := flag.Int("dwell", -1, "Frames a new gesture must hold before it is applied")
	wallClock := flag.Bool("wallclock", false, "Advance animation time from elapsed time")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := morphcloud.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = morphcloud.LoadConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *tier != "" {
		cfg.Tier = *tier
	}
	if *particles > 0 {
		cfg.ParticleCount = *particles
	}
	if *dwell >= 0 {
		cfg.Gesture.MinDwell = *dwell
	}
	cfg.WallClock = cfg.WallClock || *wallClock
	cfg.Debug = cfg.Debug || *debug
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var input morphcloud.Module = morphcloud.HandSimulatorModule{}
	var source gesture.Source
	if *demo {
		source = gesture.NewScriptedSource(gesture.DemoScript(180), time.Second/60, true)
		input = nil
	}

	app := morphcloud.NewApp().
		UseModules(
			morphcloud.LoggingModule{Prefix: "morphcloud", Debug: cfg.Debug},
			morphcloud.ConfigModule{Config: cfg},
			morphcloud.TimeModule{WallClock: cfg.WallClock},
			morphcloud.PlatformWindowModule{},
			morphcloud.GestureModule{Source: source},
		)
	if input != nil {
		app.UseModules(input)
	}
	app.UseModules(
		morphcloud.ShapesModule{},
		morphcloud.MorphModule{},
		morphcloud.PresentationModule{},
		morphcloud.PointRendererModule{},
	)
	app.Run()
}
