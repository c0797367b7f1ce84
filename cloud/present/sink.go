package present

// Sink is the renderer host the adapter pushes into once per frame.
type Sink interface {
	// Upload hands over packed x,y,z positions and the frame's visual parameters.
	// positions is only valid for the duration of the call.
	Upload(positions []float32, v VisualState)
	Render() error
	Resize(width, height int)
}

// Recorder is a Sink that keeps the last frame in memory.
type Recorder struct {
	Positions []float32
	Visual    VisualState
	Frames    int
	Width     int
	Height    int
}

func (r *Recorder) Upload(positions []float32, v VisualState) {
	r.Positions = append(r.Positions[:0], positions...)
	r.Visual = v
}

func (r *Recorder) Render() error {
	r.Frames++
	return nil
}

func (r *Recorder) Resize(width, height int) {
	r.Width, r.Height = width, height
}
