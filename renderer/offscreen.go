package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/spincube/encoder"
)

const numBuffers = 3

// FrameConsumer receives rendered frames until frameChan closes and then
// sends its result on doneChan. *encoder.Encoder is the production consumer.
type FrameConsumer interface {
	Run(frameChan <-chan *encoder.Frame, doneChan chan<- error)
}

// RunRecord is the producer side of record mode. It renders duration*fps
// frames at a fixed timestep into an offscreen target and hands each one to
// the consumer running on its own goroutine.
func (r *Renderer) RunRecord(consumer FrameConsumer, duration float64, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	target, err := r.device.CreateRenderTarget(r.config.Width, r.config.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	r.target = target

	frameChan := make(chan *encoder.Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)
	go consumer.Run(frameChan, encoderDoneChan)

	totalFrames := int(duration * float64(fps))
	timeStep := 1.0 / float64(fps)
	frameSize := target.Width * target.Height * 4

	log.Printf("Recording %d frames at %d fps (%dx%d)", totalFrames, fps, target.Width, target.Height)
	for i := 0; i < totalFrames; i++ {
		currentTime := float64(i) * timeStep
		r.state.Tick(currentTime)

		r.device.BindRenderTarget(target)
		r.RenderFrame(currentTime)

		pixels := make([]byte, frameSize)
		err := r.device.ReadPixels(target, pixels)
		r.device.BindRenderTarget(nil)
		if err != nil {
			log.Printf("Error reading pixels on frame %d: %v", i, err)
			break
		}

		frameChan <- &encoder.Frame{Pixels: pixels, PTS: int64(i)}
		if (i+1)%fps == 0 {
			log.Printf("Rendered %d/%d frames", i+1, totalFrames)
		}
	}

	close(frameChan)
	return <-encoderDoneChan
}
