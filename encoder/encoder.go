package encoder

import (
	"fmt"
	"io"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one rendered RGBA frame, bottom row first as read back from GL.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Encoder pipes raw RGBA frames into an ffmpeg process.
type Encoder struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFmpegPath string
}

func New(width, height, fps int, outputFile, ffmpegPath string) *Encoder {
	return &Encoder{
		Width:      width,
		Height:     height,
		FPS:        fps,
		OutputFile: outputFile,
		FFmpegPath: ffmpegPath,
	}
}

// FrameSize is the byte length of one frame.
func (e *Encoder) FrameSize() int {
	return e.Width * e.Height * 4
}

func (e *Encoder) getArgs() (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", e.Width, e.Height),
		"framerate": e.FPS,
	}
	outputArgs = ffmpeg.KwArgs{
		// GL rows come bottom-up.
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		"b:v":     "8M",
	}
	return
}

// WriteFrames copies frames from frameChan to w until the channel closes.
func (e *Encoder) WriteFrames(w io.Writer, frameChan <-chan *Frame) error {
	size := e.FrameSize()
	for frame := range frameChan {
		if len(frame.Pixels) != size {
			return fmt.Errorf("frame %d has %d bytes, expected %d", frame.PTS, len(frame.Pixels), size)
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			return fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
		}
	}
	return nil
}

// Run is the consumer side of recording. It starts ffmpeg, feeds it every
// frame from frameChan and reports the final result on doneChan.
func (e *Encoder) Run(frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := e.getArgs()

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(e.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if e.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(e.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg died early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	writeErr := e.WriteFrames(pipeWriter, frameChan)
	if writeErr != nil {
		log.Printf("Error feeding encoder: %v", writeErr)
		// Keep draining so the producer never blocks.
		for range frameChan {
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		doneChan <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	doneChan <- writeErr
}
