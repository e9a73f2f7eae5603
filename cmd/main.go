package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/spincube/encoder"
	"github.com/richinsley/spincube/glfwcontext"
	"github.com/richinsley/spincube/gpu"
	"github.com/richinsley/spincube/headless"
	"github.com/richinsley/spincube/options"
	"github.com/richinsley/spincube/renderer"
)

func init() {
	runtime.LockOSThread()
}

// exitOnError prints window and loader failures to stdout and exits with -1.
// Anything else is a regular fatal error.
func exitOnError(err error) {
	if errors.Is(err, renderer.ErrWindowCreation) || errors.Is(err, renderer.ErrGraphicsLoader) {
		fmt.Println(err)
		os.Exit(-1)
	}
	log.Fatalf("Error: %v", err)
}

func newWindowRenderer(cfg *options.Config, visible bool) (*renderer.Renderer, error) {
	ctx, err := glfwcontext.New(cfg, visible)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", renderer.ErrWindowCreation, err)
	}
	r, err := renderer.NewRenderer(ctx, gpu.NewGLDevice(), cfg)
	if err != nil {
		ctx.Shutdown()
		return nil, err
	}
	return r, nil
}

// runWindowed returns instead of exiting so the deferred releases always run.
func runWindowed(opts *options.Options, cfg *options.Config) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("%w: %w", renderer.ErrWindowCreation, err)
	}
	defer glfwcontext.TerminateGraphics()

	record := *opts.Mode == options.ModeRecord
	r, err := newWindowRenderer(cfg, !record)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.InitScene(*opts.Strict, *opts.ESSL); err != nil {
		return fmt.Errorf("failed to initialize scene: %w", err)
	}

	if record {
		log.Println("Starting offscreen render loop...")
		enc := encoder.New(cfg.Width, cfg.Height, *opts.FPS, *opts.OutputFile, *opts.FFmpegPath)
		if err := r.RunRecord(enc, *opts.Duration, *opts.FPS); err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	log.Println("Starting interactive render loop...")
	r.Run()
	return nil
}

func runHeadless(opts *options.Options, cfg *options.Config) error {
	ctx := headless.NewHeadless(cfg.Width, cfg.Height, 1.0/float64(*opts.FPS))
	device := gpu.NewNullDevice()
	r, err := renderer.NewRenderer(ctx, device, cfg)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.InitScene(*opts.Strict, *opts.ESSL); err != nil {
		return fmt.Errorf("failed to initialize scene: %w", err)
	}
	frames := r.RunFrames(*opts.Frames)
	log.Printf("Headless run finished: %d frames, %d draw calls", frames, len(device.Draws))
	return nil
}

func main() {
	opts := &options.Options{
		ConfigFile: flag.String("config", "", "Path to a TOML config file"),
		Help:       flag.Bool("help", false, "Show help message"),
		Mode:       flag.String("mode", options.ModeInteractive, "Run mode: interactive, record or headless"),
		Strict:     flag.Bool("strict", false, "Exit when the shaders fail to compile or link"),
		ESSL:       flag.Bool("essl", false, "Shader files are GLSL ES 3.00 and are translated before compiling"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording and headless runs"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFmpegPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Frames:     flag.Int("frames", 120, "Number of frames to run in headless mode"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Spinning cubes demo")
		flag.PrintDefaults()
		return
	}
	if *opts.FPS <= 0 {
		log.Fatalf("fps must be positive, got %d", *opts.FPS)
	}

	cfg, err := options.LoadConfig(*opts.ConfigFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	switch *opts.Mode {
	case options.ModeInteractive, options.ModeRecord:
		err = runWindowed(opts, cfg)
	case options.ModeHeadless:
		err = runHeadless(opts, cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *opts.Mode)
	}
	if err != nil {
		exitOnError(err)
	}
}
