package gpu

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	glLoad     = gl.Init
	glInitOnce sync.Once
	glInitErr  error
)

// GLDevice implements Device on top of the OpenGL 4.1 core profile.
type GLDevice struct{}

func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

// Init loads the OpenGL function pointers. The context must be current.
func (d *GLDevice) Init() error {
	glInitOnce.Do(func() {
		glInitErr = glLoad()
	})
	if glInitErr != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return nil
}

func (d *GLDevice) MaxVertexAttribs() int32 {
	var n int32
	gl.GetIntegerv(gl.MAX_VERTEX_ATTRIBS, &n)
	return n
}

func glStage(stage ShaderStage) uint32 {
	if stage == FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *GLDevice) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return shader, strings.TrimRight(logText, "\x00"), false
	}
	return shader, "", true
}

func (d *GLDevice) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		return program, strings.TrimRight(logText, "\x00"), false
	}
	return program, "", true
}

func (d *GLDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GLDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *GLDevice) UniformFloats(location int32, kind UniformKind, v []float32) {
	if len(v) < kind.Components() {
		return
	}
	switch kind {
	case Float:
		gl.Uniform1fv(location, 1, &v[0])
	case Vec2:
		gl.Uniform2fv(location, 1, &v[0])
	case Vec3:
		gl.Uniform3fv(location, 1, &v[0])
	case Vec4:
		gl.Uniform4fv(location, 1, &v[0])
	case Mat2:
		gl.UniformMatrix2fv(location, 1, false, &v[0])
	case Mat3:
		gl.UniformMatrix3fv(location, 1, false, &v[0])
	case Mat4:
		gl.UniformMatrix4fv(location, 1, false, &v[0])
	}
}

func (d *GLDevice) GetUniformInt(program uint32, location int32) int32 {
	var v int32
	gl.GetUniformiv(program, location, &v)
	return v
}

func (d *GLDevice) GetUniformFloats(program uint32, location int32, dst []float32) {
	if len(dst) == 0 {
		return
	}
	gl.GetUniformfv(program, location, &dst[0])
}

func (d *GLDevice) CreateMesh(vertices []float32, stride int, attrs []Attribute) *Mesh {
	m := &Mesh{VertexCount: int32(len(vertices) / stride)}
	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)
	gl.BindVertexArray(m.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	for _, a := range attrs {
		gl.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, int32(stride*4), gl.PtrOffset(a.Offset*4))
		gl.EnableVertexAttribArray(a.Location)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (d *GLDevice) DrawTriangles(mesh *Mesh, first, count int32) {
	gl.BindVertexArray(mesh.VAO)
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *GLDevice) DeleteMesh(mesh *Mesh) {
	if mesh == nil {
		return
	}
	gl.DeleteVertexArrays(1, &mesh.VAO)
	gl.DeleteBuffers(1, &mesh.VBO)
}

func glWrap(w Wrap) int32 {
	switch w {
	case WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

func glFilter(f Filter) (minFilter, magFilter int32) {
	switch f {
	case FilterMipmap:
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case FilterNearest:
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}

func (d *GLDevice) CreateTexture(img *image.RGBA, sampler Sampler) uint32 {
	width := int32(img.Rect.Size().X)
	height := int32(img.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(sampler.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(sampler.Wrap))
	minFilter, magFilter := glFilter(sampler.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if sampler.Filter == FilterMipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID
}

func (d *GLDevice) BindTexture(unit uint32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *GLDevice) DeleteTexture(texture uint32) {
	if texture == 0 {
		return
	}
	gl.DeleteTextures(1, &texture)
}

func (d *GLDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *GLDevice) Clear(color [4]float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GLDevice) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (d *GLDevice) SetWireframe(wireframe bool) {
	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *GLDevice) CreateRenderTarget(width, height int) (*RenderTarget, error) {
	rt := &RenderTarget{Width: width, Height: height}

	gl.GenFramebuffers(1, &rt.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.GenTextures(1, &rt.Texture)
	gl.BindTexture(gl.TEXTURE_2D, rt.Texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.Texture, 0)
	gl.GenRenderbuffers(1, &rt.Depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.Depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.Depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		d.DeleteRenderTarget(rt)
		return nil, fmt.Errorf("offscreen framebuffer is not complete (status 0x%x)", status)
	}
	return rt, nil
}

func (d *GLDevice) BindRenderTarget(rt *RenderTarget) {
	if rt == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
}

func (d *GLDevice) ReadPixels(rt *RenderTarget, dst []byte) error {
	need := rt.Width * rt.Height * 4
	if len(dst) < need {
		return fmt.Errorf("pixel buffer too small: have %d bytes, need %d", len(dst), need)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rt.FBO)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(rt.Width), int32(rt.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&dst[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return nil
}

func (d *GLDevice) DeleteRenderTarget(rt *RenderTarget) {
	if rt == nil {
		return
	}
	gl.DeleteFramebuffers(1, &rt.FBO)
	gl.DeleteTextures(1, &rt.Texture)
	gl.DeleteRenderbuffers(1, &rt.Depth)
}
