package gpu

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
)

var (
	// uniformDecl matches GLSL uniform declarations such as
	// "uniform highp mat4 model;", "uniform vec3 a, b;" or "uniform vec2 x[4];".
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([^;{]+);`)
	arraySuffix = regexp.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
	// varyingDecl matches stage interface declarations. Group 1 is the
	// direction, group 2 the variable name.
	varyingDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective|centroid)\s+)*(in|out)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
)

// DrawCall records one DrawTriangles issued against a NullDevice.
type DrawCall struct {
	Program uint32
	First   int32
	Count   int32
}

type nullShader struct {
	stage    ShaderStage
	source   string
	compiled bool
}

type nullProgram struct {
	locations map[string]int32
	values    map[int32][]float32
}

// NullDevice is an in-memory Device that needs no graphics driver. Every
// uniform declared in a compiled source is considered active; an array
// uniform "x[n]" takes n consecutive locations, resolvable as "x", "x[0]"
// and so on. Sources without a main function fail to compile, and linking
// fails when the fragment stage reads an input the vertex stage never writes.
type NullDevice struct {
	nextID   uint32
	shaders  map[uint32]*nullShader
	programs map[uint32]*nullProgram
	textures map[uint32]Sampler
	targets  map[uint32]*RenderTarget
	current  uint32

	Draws      []DrawCall
	Clears     int
	ClearColor [4]float32
	Bound      map[uint32]uint32
	DepthTest  bool
	Wireframe  bool
	ViewportW  int
	ViewportH  int
}

func NewNullDevice() *NullDevice {
	return &NullDevice{
		shaders:  make(map[uint32]*nullShader),
		programs: make(map[uint32]*nullProgram),
		textures: make(map[uint32]Sampler),
		targets:  make(map[uint32]*RenderTarget),
		Bound:    make(map[uint32]uint32),
	}
}

func (d *NullDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *NullDevice) Init() error { return nil }

func (d *NullDevice) MaxVertexAttribs() int32 { return 16 }

func (d *NullDevice) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	id := d.id()
	s := &nullShader{stage: stage, source: source}
	d.shaders[id] = s
	if !strings.Contains(source, "void main") {
		return id, fmt.Sprintf("0:1(1): error: %s shader has no main function", stage), false
	}
	s.compiled = true
	return id, "", true
}

func (d *NullDevice) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	id := d.id()
	p := &nullProgram{
		locations: make(map[string]int32),
		values:    make(map[int32][]float32),
	}
	d.programs[id] = p

	vs, fs := d.shaders[vertex], d.shaders[fragment]
	if vs == nil || fs == nil || !vs.compiled || !fs.compiled {
		return id, "error: linking with uncompiled shader objects", false
	}
	if missing := unmatchedInputs(vs.source, fs.source); len(missing) > 0 {
		return id, fmt.Sprintf("error: fragment shader input %s has no matching vertex shader output",
			strings.Join(missing, ", ")), false
	}

	var next int32
	for _, src := range []string{vs.source, fs.source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			for _, decl := range strings.Split(m[2], ",") {
				next = p.declare(strings.TrimSpace(decl), next)
			}
		}
	}
	return id, "", true
}

// declare assigns locations for one declarator and returns the next free
// location.
func (p *nullProgram) declare(decl string, next int32) int32 {
	name, size := decl, 1
	if m := arraySuffix.FindStringSubmatch(decl); m != nil {
		name = m[1]
		if n, err := strconv.Atoi(m[2]); err == nil && n > 0 {
			size = n
		}
		for i := 0; i < size; i++ {
			p.locations[fmt.Sprintf("%s[%d]", name, i)] = next + int32(i)
		}
	}
	if name == "" {
		return next
	}
	if _, ok := p.locations[name]; ok && size == 1 {
		return next
	}
	p.locations[name] = next
	return next + int32(size)
}

// unmatchedInputs lists fragment inputs with no vertex output of that name.
func unmatchedInputs(vertexSource, fragmentSource string) []string {
	outputs := make(map[string]bool)
	for _, m := range varyingDecl.FindAllStringSubmatch(vertexSource, -1) {
		if m[1] == "out" {
			outputs[m[2]] = true
		}
	}
	var missing []string
	for _, m := range varyingDecl.FindAllStringSubmatch(fragmentSource, -1) {
		if m[1] == "in" && !outputs[m[2]] {
			missing = append(missing, m[2])
		}
	}
	return missing
}

func (d *NullDevice) DeleteShader(shader uint32) {
	delete(d.shaders, shader)
}

func (d *NullDevice) DeleteProgram(program uint32) {
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *NullDevice) UseProgram(program uint32) {
	d.current = program
}

// CurrentProgram returns the program last bound with UseProgram.
func (d *NullDevice) CurrentProgram() uint32 {
	return d.current
}

func (d *NullDevice) UniformLocation(program uint32, name string) int32 {
	p, ok := d.programs[program]
	if !ok {
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *NullDevice) store(location int32, v []float32) {
	p, ok := d.programs[d.current]
	if !ok || location < 0 {
		return
	}
	p.values[location] = append([]float32(nil), v...)
}

func (d *NullDevice) UniformInt(location int32, v int32) {
	d.store(location, []float32{float32(v)})
}

func (d *NullDevice) UniformFloats(location int32, kind UniformKind, v []float32) {
	n := kind.Components()
	if len(v) < n {
		return
	}
	d.store(location, v[:n])
}

func (d *NullDevice) GetUniformInt(program uint32, location int32) int32 {
	p, ok := d.programs[program]
	if !ok {
		return 0
	}
	if v := p.values[location]; len(v) > 0 {
		return int32(v[0])
	}
	return 0
}

func (d *NullDevice) GetUniformFloats(program uint32, location int32, dst []float32) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	copy(dst, p.values[location])
}

func (d *NullDevice) CreateMesh(vertices []float32, stride int, attrs []Attribute) *Mesh {
	return &Mesh{VAO: d.id(), VBO: d.id(), VertexCount: int32(len(vertices) / stride)}
}

func (d *NullDevice) DrawTriangles(mesh *Mesh, first, count int32) {
	d.Draws = append(d.Draws, DrawCall{Program: d.current, First: first, Count: count})
}

func (d *NullDevice) DeleteMesh(mesh *Mesh) {}

func (d *NullDevice) CreateTexture(img *image.RGBA, sampler Sampler) uint32 {
	id := d.id()
	d.textures[id] = sampler
	return id
}

// TextureSampler returns the sampler a texture was created with.
func (d *NullDevice) TextureSampler(texture uint32) (Sampler, bool) {
	s, ok := d.textures[texture]
	return s, ok
}

func (d *NullDevice) BindTexture(unit uint32, texture uint32) {
	d.Bound[unit] = texture
}

func (d *NullDevice) DeleteTexture(texture uint32) {
	delete(d.textures, texture)
}

func (d *NullDevice) Viewport(width, height int) {
	d.ViewportW, d.ViewportH = width, height
}

func (d *NullDevice) Clear(color [4]float32) {
	d.Clears++
	d.ClearColor = color
}

func (d *NullDevice) EnableDepthTest() {
	d.DepthTest = true
}

func (d *NullDevice) SetWireframe(wireframe bool) {
	d.Wireframe = wireframe
}

func (d *NullDevice) CreateRenderTarget(width, height int) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render target size %dx%d", width, height)
	}
	rt := &RenderTarget{FBO: d.id(), Texture: d.id(), Depth: d.id(), Width: width, Height: height}
	d.targets[rt.FBO] = rt
	return rt, nil
}

func (d *NullDevice) BindRenderTarget(rt *RenderTarget) {}

// ReadPixels fills dst with the last clear colour, clamped to [0, 1].
func (d *NullDevice) ReadPixels(rt *RenderTarget, dst []byte) error {
	need := rt.Width * rt.Height * 4
	if len(dst) < need {
		return fmt.Errorf("pixel buffer too small: have %d bytes, need %d", len(dst), need)
	}
	var px [4]byte
	for i, c := range d.ClearColor {
		px[i] = byte(min(max(c, 0), 1)*255 + 0.5)
	}
	for i := 0; i < need; i += 4 {
		copy(dst[i:i+4], px[:])
	}
	return nil
}

func (d *NullDevice) DeleteRenderTarget(rt *RenderTarget) {
	if rt != nil {
		delete(d.targets, rt.FBO)
	}
}
