package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/spincube/gpu"
	"github.com/richinsley/spincube/graphics"
	"github.com/richinsley/spincube/inputs"
	"github.com/richinsley/spincube/options"
	"github.com/richinsley/spincube/scene"
	"github.com/richinsley/spincube/shader"
	xlate "github.com/richinsley/spincube/translator"
)

var (
	// ErrWindowCreation is returned by callers that fail to open the window
	// handed to NewRenderer.
	ErrWindowCreation = errors.New("failed to create window")
	ErrGraphicsLoader = errors.New("failed to initialize graphics loader")
)

var cubeAttributes = []gpu.Attribute{
	{Location: 0, Size: 3, Offset: 0}, // position
	{Location: 1, Size: 2, Offset: 3}, // texture coordinate
}

type Renderer struct {
	context  graphics.Context
	device   gpu.Device
	config   *options.Config
	program  *shader.Program
	mesh     *gpu.Mesh
	textures [2]uint32
	target   *gpu.RenderTarget
	state    *scene.State
	slots    [scene.SlotCount]scene.ObjectSlot
}

// NewRenderer makes ctx current and loads the device on it.
func NewRenderer(ctx graphics.Context, device gpu.Device, cfg *options.Config) (*Renderer, error) {
	ctx.MakeCurrent()
	if err := device.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGraphicsLoader, err)
	}
	log.Printf("Maximum nr of vertex attributes supported: %d", device.MaxVertexAttribs())

	state := scene.NewState(cfg.Width, cfg.Height)
	state.Camera.Speed = cfg.CameraSpeed
	state.Camera.Sensitivity = cfg.Sensitivity
	state.LookOnKeyUp = cfg.LookOnKeyUp

	return &Renderer{
		context: ctx,
		device:  device,
		config:  cfg,
		state:   state,
		slots:   scene.Slots(),
	}, nil
}

// State exposes the application state driven by the loop.
func (r *Renderer) State() *scene.State { return r.state }

// Program returns the cube program, or nil before InitScene.
func (r *Renderer) Program() *shader.Program { return r.program }

// InitScene loads shaders, mesh and textures. With essl the GLSL ES sources
// are loaded and translated first. Only shader failures can make it return an
// error, and only when strict is set; everything else is logged and rendering
// goes on with what loaded.
func (r *Renderer) InitScene(strict, essl bool) error {
	vertexPath, fragmentPath := r.config.ShaderPaths(essl)
	vertexSource, fragmentSource, err := shader.LoadSources(vertexPath, fragmentPath)
	if err != nil {
		log.Printf("Error loading shader sources: %v", err)
	}

	var aliases map[string]string
	if essl {
		translated, err := xlate.TranslatePair(vertexSource, fragmentSource)
		if err != nil {
			if strict {
				return err
			}
			log.Printf("Warning: %v", err)
		} else {
			vertexSource, fragmentSource = translated.Vertex, translated.Fragment
			aliases = translated.Aliases
		}
	}

	r.program, err = shader.CompileAndLink(r.device, vertexSource, fragmentSource)
	if err != nil {
		if strict {
			r.program.Delete()
			r.program = nil
			return fmt.Errorf("failed to create shader program: %w", err)
		}
		logShaderError(err)
	}
	if aliases != nil {
		r.program.SetAliases(aliases)
	}

	r.mesh = r.device.CreateMesh(scene.CubeVertices, scene.CubeStride, cubeAttributes)
	r.textures[0] = r.loadTexture(r.config.Texture1)
	r.textures[1] = r.loadTexture(r.config.Texture2)

	r.program.Use()
	r.program.SetInt("texture1", 0)
	r.program.SetInt("texture2", 1)

	r.device.EnableDepthTest()
	return nil
}

func logShaderError(err error) {
	var compileErr *shader.CompileError
	if errors.As(err, &compileErr) {
		log.Printf("Shader compilation failed (%s stage): %s", compileErr.Stage, compileErr.Log)
	}
	var linkErr *shader.LinkError
	if errors.As(err, &linkErr) {
		log.Printf("Shader program link failed: %s", linkErr.Log)
	}
	if compileErr == nil && linkErr == nil {
		log.Printf("Shader error: %v", err)
	}
}

func (r *Renderer) loadTexture(tc options.TextureConfig) uint32 {
	sampler, err := inputs.ParseSampler(tc.Wrap, tc.Filter, tc.FlipY)
	if err != nil {
		log.Printf("Warning: texture %s: %v, using defaults", tc.Path, err)
		sampler = gpu.Sampler{Filter: gpu.FilterMipmap, VFlip: tc.FlipY}
	}
	id, err := inputs.LoadTexture(r.device, tc.Path, sampler)
	if err != nil {
		log.Printf("Failed to load texture: %v", err)
		return 0
	}
	return id
}

// renderSize is the render target size when recording, else the framebuffer
// size with the configured window size as fallback.
func (r *Renderer) renderSize() (int, int) {
	if r.target != nil {
		return r.target.Width, r.target.Height
	}
	w, h := r.context.GetFramebufferSize()
	if w <= 0 || h <= 0 {
		return r.config.Width, r.config.Height
	}
	return w, h
}

// RenderFrame draws every slot for the given elapsed seconds.
func (r *Renderer) RenderFrame(elapsed float64) {
	width, height := r.renderSize()

	r.device.SetWireframe(r.state.Wireframe)
	r.device.Viewport(width, height)
	r.device.Clear(r.config.ClearColor)

	r.device.BindTexture(0, r.textures[0])
	r.device.BindTexture(1, r.textures[1])

	r.program.Use()
	camera := &r.state.Camera
	r.program.SetMat4("projection", camera.Projection(float32(width)/float32(height)))
	r.program.SetMat4("view", camera.View())

	phase := r.state.Phase(elapsed)
	for _, slot := range r.slots {
		r.program.SetMat4("model", slot.Model(phase))
		r.device.DrawTriangles(r.mesh, 0, r.mesh.VertexCount)
	}
}

// Step runs one loop iteration: timing, input, then a frame if the state is
// still running. It reports whether a frame was drawn.
func (r *Renderer) Step() bool {
	if !r.state.Running() {
		return false
	}
	now := r.context.Time()
	deltaTime := r.state.Tick(now)

	r.state.HandleEvents(r.context.Events())
	r.state.ApplyKeys(r.context.Keyboard(), deltaTime)
	if r.context.ShouldClose() {
		r.state.Close()
	}
	if !r.state.Running() {
		return false
	}

	r.RenderFrame(now)
	r.context.EndFrame()
	return true
}

// Run loops until the state is closed.
func (r *Renderer) Run() {
	for r.Step() {
	}
	log.Printf("Render loop %s", r.state.RunState())
}

// RunFrames runs at most n iterations and returns how many frames were drawn.
func (r *Renderer) RunFrames(n int) int {
	drawn := 0
	for i := 0; i < n && r.Step(); i++ {
		drawn++
	}
	return drawn
}

// Shutdown releases everything InitScene acquired, in reverse order, then
// the window.
func (r *Renderer) Shutdown() {
	if r.target != nil {
		r.device.DeleteRenderTarget(r.target)
		r.target = nil
	}
	for i := len(r.textures) - 1; i >= 0; i-- {
		if r.textures[i] != 0 {
			r.device.DeleteTexture(r.textures[i])
			r.textures[i] = 0
		}
	}
	if r.mesh != nil {
		r.device.DeleteMesh(r.mesh)
		r.mesh = nil
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
	r.context.Shutdown()
}
