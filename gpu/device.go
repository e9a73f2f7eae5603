package gpu

import "image"

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// UniformKind is the semantic type of a float uniform.
type UniformKind int

const (
	Float UniformKind = iota
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

// Components returns the number of float32 values a uniform of this kind holds.
func (k UniformKind) Components() int {
	switch k {
	case Float:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4, Mat2:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	default:
		return 0
	}
}

// Attribute describes one interleaved float vertex attribute. Size and Offset
// are counted in float32 components.
type Attribute struct {
	Location uint32
	Size     int32
	Offset   int
}

// Mesh is a vertex array uploaded to the device.
type Mesh struct {
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapMirroredRepeat
	WrapClampToEdge
)

type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
	// FilterMipmap samples with linear-mipmap-linear minification and
	// generates mipmaps at upload.
	FilterMipmap
)

// Sampler is the wrap/filter configuration of a 2D texture.
type Sampler struct {
	Wrap   Wrap
	Filter Filter
	VFlip  bool
}

// RenderTarget is an offscreen colour+depth framebuffer.
type RenderTarget struct {
	FBO     uint32
	Texture uint32
	Depth   uint32
	Width   int
	Height  int
}

// Device is the subset of the graphics API the renderer drives. All calls must
// be made from the thread that owns the current context.
type Device interface {
	Init() error
	MaxVertexAttribs() int32

	CompileShader(stage ShaderStage, source string) (shader uint32, infoLog string, ok bool)
	LinkProgram(vertex, fragment uint32) (program uint32, infoLog string, ok bool)
	DeleteShader(shader uint32)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns -1 when name is not an active uniform.
	UniformLocation(program uint32, name string) int32
	UniformInt(location int32, v int32)
	UniformFloats(location int32, kind UniformKind, v []float32)
	GetUniformInt(program uint32, location int32) int32
	GetUniformFloats(program uint32, location int32, dst []float32)

	CreateMesh(vertices []float32, stride int, attrs []Attribute) *Mesh
	DrawTriangles(mesh *Mesh, first, count int32)
	DeleteMesh(mesh *Mesh)

	CreateTexture(img *image.RGBA, sampler Sampler) uint32
	BindTexture(unit uint32, texture uint32)
	DeleteTexture(texture uint32)

	Viewport(width, height int)
	Clear(color [4]float32)
	EnableDepthTest()
	SetWireframe(wireframe bool)

	CreateRenderTarget(width, height int) (*RenderTarget, error)
	// BindRenderTarget binds rt for drawing; nil binds the default framebuffer.
	BindRenderTarget(rt *RenderTarget)
	// ReadPixels copies the RGBA8 contents of rt into dst, bottom row first.
	ReadPixels(rt *RenderTarget, dst []byte) error
	DeleteRenderTarget(rt *RenderTarget)
}
