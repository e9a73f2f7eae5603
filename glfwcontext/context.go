package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/spincube/graphics"
	"github.com/richinsley/spincube/inputs"
	"github.com/richinsley/spincube/options"
)

var keyMap = [graphics.KeyCount]glfw.Key{
	graphics.KeyEscape:    glfw.KeyEscape,
	graphics.KeyW:         glfw.KeyW,
	graphics.KeyA:         glfw.KeyA,
	graphics.KeyS:         glfw.KeyS,
	graphics.KeyD:         glfw.KeyD,
	graphics.KeyPageUp:    glfw.KeyPageUp,
	graphics.KeyPageDown:  glfw.KeyPageDown,
	graphics.KeySpace:     glfw.KeySpace,
	graphics.KeyBackspace: glfw.KeyBackspace,
	graphics.Key1:         glfw.Key1,
	graphics.Key2:         glfw.Key2,
}

// Context is a GLFW window with an OpenGL 4.1 core context. Input callbacks
// queue events which the render loop drains once per frame.
type Context struct {
	window *glfw.Window
	events []graphics.Event
}

// New creates the window. A hidden window is used for recording, where the
// cursor is left alone.
func New(cfg *options.Config, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}

	if cfg.Icon != "" {
		icons, err := inputs.IconImages(cfg.Icon)
		if err != nil {
			log.Printf("Warning: could not load window icon: %v", err)
		} else {
			win.SetIcon(icons)
		}
	}

	if visible {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetScrollCallback(c.glfwScrollCallback)
	win.SetCloseCallback(c.glfwCloseCallback)

	return c, nil
}

// glfwKeyCallback only queues releases. Held keys are polled in Keyboard.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Release {
		return
	}
	x, y := w.GetCursorPos()
	c.events = append(c.events, graphics.Event{Type: graphics.EventKeyUp, X: x, Y: y})
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, x, y float64) {
	c.events = append(c.events, graphics.Event{Type: graphics.EventMouseMotion, X: x, Y: y})
}

func (c *Context) glfwScrollCallback(w *glfw.Window, xoff, yoff float64) {
	c.events = append(c.events, graphics.Event{Type: graphics.EventScroll, X: xoff, Y: yoff})
}

func (c *Context) glfwCloseCallback(w *glfw.Window) {
	c.events = append(c.events, graphics.Event{Type: graphics.EventQuit})
}

// Keyboard polls the held state of every key the application uses.
func (c *Context) Keyboard() graphics.KeySnapshot {
	var keys graphics.KeySnapshot
	for k, gk := range keyMap {
		keys[k] = c.window.GetKey(gk) == glfw.Press
	}
	return keys
}

// Events returns and clears the queued events.
func (c *Context) Events() []graphics.Event {
	events := c.events
	c.events = nil
	return events
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
