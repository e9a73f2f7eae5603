package scene

import "github.com/richinsley/spincube/graphics"

const (
	// SpeedBiasStep is added to or taken from the speed bias per frame held.
	SpeedBiasStep = 0.01
	// WarpForwardRate and WarpBackRate scale deltaTime into the time warp.
	// The asymmetry is intentional.
	WarpForwardRate = 4.0
	WarpBackRate    = 6.0
)

type RunState int

const (
	Running RunState = iota
	Closed
)

func (s RunState) String() string {
	if s == Closed {
		return "closed"
	}
	return "running"
}

// Input holds the accumulated input-derived values. None of them is clamped.
type Input struct {
	Keys graphics.KeySnapshot
	// SpeedBias is added to the per-frame movement distance and may go
	// negative, which reverses movement.
	SpeedBias float32
	// TimeWarp shifts the phase of every slot's spin, in seconds.
	TimeWarp float32
	// LastX and LastY are the cursor position of the previous look update.
	LastX, LastY float32
}

// State is the whole mutable application state. It is owned by the render
// loop thread.
type State struct {
	Camera    Camera
	Input     Input
	Wireframe bool
	// LookOnKeyUp drives mouse look from key-release events instead of cursor
	// motion.
	LookOnKeyUp bool

	run       RunState
	lastFrame float64
}

// NewState returns the startup state for a window of the given size. The
// look origin is the window centre.
func NewState(width, height int) *State {
	return &State{
		Camera: NewCamera(),
		Input: Input{
			LastX: float32(width) / 2,
			LastY: float32(height) / 2,
		},
	}
}

func (s *State) RunState() RunState { return s.run }

func (s *State) Running() bool { return s.run == Running }

// Close moves the state to Closed. There is no way back.
func (s *State) Close() { s.run = Closed }

// Tick returns the seconds since the previous Tick. The previous frame time
// starts at zero, so the first delta is the clock value itself.
func (s *State) Tick(now float64) float32 {
	dt := now - s.lastFrame
	s.lastFrame = now
	return float32(dt)
}

// ApplyKeys applies one frame of held keys.
func (s *State) ApplyKeys(keys graphics.KeySnapshot, dt float32) {
	s.Input.Keys = keys
	c := &s.Camera
	speed := c.Speed*dt + s.Input.SpeedBias
	right := c.Right()

	if keys.Held(graphics.KeyEscape) {
		s.Close()
	}
	if keys.Held(graphics.Key1) {
		s.Wireframe = false
	}
	if keys.Held(graphics.Key2) {
		s.Wireframe = true
	}
	if keys.Held(graphics.KeyW) {
		c.Position = c.Position.Add(c.Front.Mul(speed))
	}
	if keys.Held(graphics.KeyS) {
		c.Position = c.Position.Sub(c.Front.Mul(speed))
	}
	if keys.Held(graphics.KeyA) {
		c.Position = c.Position.Sub(right.Mul(speed))
	}
	if keys.Held(graphics.KeyD) {
		c.Position = c.Position.Add(right.Mul(speed))
	}
	if keys.Held(graphics.KeyPageUp) {
		s.Input.SpeedBias += SpeedBiasStep
	}
	if keys.Held(graphics.KeyPageDown) {
		s.Input.SpeedBias -= SpeedBiasStep
	}
	if keys.Held(graphics.KeySpace) {
		s.Input.TimeWarp += WarpForwardRate * dt
	}
	if keys.Held(graphics.KeyBackspace) {
		s.Input.TimeWarp -= WarpBackRate * dt
	}
}

// HandleEvents applies the discrete events queued since the last frame.
func (s *State) HandleEvents(events []graphics.Event) {
	for _, ev := range events {
		switch ev.Type {
		case graphics.EventQuit:
			s.Close()
		case graphics.EventScroll:
			s.Camera.Zoom(float32(ev.Y))
		case graphics.EventKeyUp:
			if s.LookOnKeyUp {
				s.look(float32(ev.X), float32(ev.Y))
			}
		case graphics.EventMouseMotion:
			if !s.LookOnKeyUp {
				s.look(float32(ev.X), float32(ev.Y))
			}
		}
	}
}

func (s *State) look(x, y float32) {
	dx := x - s.Input.LastX
	dy := y - s.Input.LastY
	s.Input.LastX, s.Input.LastY = x, y
	s.Camera.Look(dx, dy)
}

// Phase is the spin phase for a frame at the given elapsed seconds.
func (s *State) Phase(elapsed float64) float32 {
	return float32(elapsed) + s.Input.TimeWarp
}
