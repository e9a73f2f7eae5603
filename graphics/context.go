package graphics

// Key names the keys the application polls from the keyboard snapshot.
type Key int

const (
	KeyEscape Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyPageUp
	KeyPageDown
	KeySpace
	KeyBackspace
	Key1
	Key2
	KeyCount
)

// KeySnapshot is the held/released state of every polled key at one instant.
type KeySnapshot [KeyCount]bool

func (k KeySnapshot) Held(key Key) bool {
	return key >= 0 && key < KeyCount && k[key]
}

type EventType int

const (
	// EventQuit is an external close request, e.g. the window close button.
	EventQuit EventType = iota
	// EventScroll carries the wheel offset in X/Y.
	EventScroll
	// EventKeyUp carries the cursor position at the time a key was released.
	EventKeyUp
	// EventMouseMotion carries the new cursor position.
	EventMouseMotion
)

// Event is one discrete input event delivered through the event queue.
type Event struct {
	Type EventType
	X, Y float64
}

// Context defines the interface for a window with a current graphics context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the back buffer and polls pending input.
	EndFrame()
	GetFramebufferSize() (int, int)
	// Time returns monotonic seconds since the context was initialized.
	Time() float64
	// Keyboard returns the current held-key snapshot.
	Keyboard() KeySnapshot
	// Events drains the events queued since the previous call.
	Events() []Event
}
