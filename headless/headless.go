// Package headless provides a windowless graphics.Context driven by a
// script of per-frame input, for smoke runs and tests without a display.
package headless

import (
	"github.com/richinsley/spincube/graphics"
)

// Step is the input delivered during one frame.
type Step struct {
	Keys   []graphics.Key
	Events []graphics.Event
}

// Context advances a fixed clock by one step per EndFrame.
type Context struct {
	width, height int
	timeStep      float64
	frame         int
	script        []Step
	quitAfter     int
	shutdown      bool
}

// NewHeadless returns a context whose clock reads (frame+1)*timeStep.
func NewHeadless(width, height int, timeStep float64) *Context {
	return &Context{
		width:     width,
		height:    height,
		timeStep:  timeStep,
		quitAfter: -1,
	}
}

// Script sets the input for the first len(steps) frames.
func (c *Context) Script(steps ...Step) *Context {
	c.script = steps
	return c
}

// QuitAfter queues a quit event on frame n.
func (c *Context) QuitAfter(n int) *Context {
	c.quitAfter = n
	return c
}

// Frame is the number of frames ended so far.
func (c *Context) Frame() int { return c.frame }

func (c *Context) IsShutdown() bool { return c.shutdown }

func (c *Context) step() Step {
	if c.frame < len(c.script) {
		return c.script[c.frame]
	}
	return Step{}
}

func (c *Context) MakeCurrent() {}

func (c *Context) Shutdown() { c.shutdown = true }

func (c *Context) ShouldClose() bool { return false }

func (c *Context) EndFrame() { c.frame++ }

func (c *Context) GetFramebufferSize() (int, int) { return c.width, c.height }

func (c *Context) Time() float64 {
	return float64(c.frame+1) * c.timeStep
}

func (c *Context) Keyboard() graphics.KeySnapshot {
	var keys graphics.KeySnapshot
	for _, k := range c.step().Keys {
		if k >= 0 && k < graphics.KeyCount {
			keys[k] = true
		}
	}
	return keys
}

func (c *Context) Events() []graphics.Event {
	events := append([]graphics.Event(nil), c.step().Events...)
	if c.frame == c.quitAfter {
		events = append(events, graphics.Event{Type: graphics.EventQuit})
	}
	return events
}

var _ graphics.Context = (*Context)(nil)
