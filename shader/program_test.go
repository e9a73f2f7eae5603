package shader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/spincube/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFragment = `#version 410 core
uniform bool flag;
uniform int count;
uniform float scale;
uniform vec2 offset2;
uniform vec3 offset3;
uniform vec4 tint;
uniform mat2 m2;
uniform mat3 m3;
out vec4 FragColor;
void main() { FragColor = tint; }
`

func newTestProgram(t *testing.T) (*Program, *gpu.NullDevice) {
	t.Helper()
	device := gpu.NewNullDevice()
	p, err := CompileAndLink(device, DefaultVertexSource(false), testFragment)
	require.NoError(t, err)
	require.True(t, p.Linked())
	p.Use()
	return p, device
}

func TestCompileAndLinkDefaults(t *testing.T) {
	device := gpu.NewNullDevice()
	p, err := CompileAndLink(device, DefaultVertexSource(false), DefaultFragmentSource(false))
	require.NoError(t, err)
	assert.True(t, p.Linked())
	assert.NotZero(t, p.ID())
}

func TestUniformRoundTrip(t *testing.T) {
	p, _ := newTestProgram(t)

	p.SetBool("flag", true)
	assert.True(t, p.GetBool("flag"))

	p.SetInt("count", 7)
	assert.Equal(t, int32(7), p.GetInt("count"))

	p.SetFloat("scale", 0.25)
	assert.InDelta(t, 0.25, p.GetFloat("scale"), 1e-6)

	p.SetVec2("offset2", mgl32.Vec2{1, 2})
	assert.Equal(t, mgl32.Vec2{1, 2}, p.GetVec2("offset2"))

	p.SetVec3("offset3", mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.GetVec3("offset3"))

	p.SetVec4("tint", mgl32.Vec4{0.1, 0.2, 0.3, 0.4})
	assert.True(t, p.GetVec4("tint").ApproxEqual(mgl32.Vec4{0.1, 0.2, 0.3, 0.4}))

	m2 := mgl32.Mat2{1, 2, 3, 4}
	p.SetMat2("m2", m2)
	assert.Equal(t, m2, p.GetMat2("m2"))

	m3 := mgl32.Rotate3DY(0.5)
	p.SetMat3("m3", m3)
	assert.True(t, p.GetMat3("m3").ApproxEqual(m3))

	model := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DX(0.3))
	p.SetMat4("model", model)
	assert.True(t, p.GetMat4("model").ApproxEqual(model))
}

func TestUnknownUniformIsNoop(t *testing.T) {
	p, _ := newTestProgram(t)

	assert.NotPanics(t, func() {
		p.SetFloat("missing", 3)
		p.SetMat4("alsoMissing", mgl32.Ident4())
	})
	assert.Zero(t, p.GetFloat("missing"))
	assert.Equal(t, mgl32.Mat4{}, p.GetMat4("alsoMissing"))
	assert.False(t, p.GetBool("missing"))
}

func TestCompileErrorsAreTyped(t *testing.T) {
	device := gpu.NewNullDevice()

	p, err := CompileAndLink(device, "", DefaultFragmentSource(false))
	require.Error(t, err)
	require.NotNil(t, p)
	assert.False(t, p.Linked())

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.VertexStage, compileErr.Stage)
	assert.NotEmpty(t, compileErr.Log)

	var linkErr *LinkError
	assert.False(t, errors.As(err, &linkErr))

	_, err = CompileAndLink(device, DefaultVertexSource(false), "garbage")
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.FragmentStage, compileErr.Stage)
}

func TestLinkErrorIsTyped(t *testing.T) {
	device := gpu.NewNullDevice()
	vs := "void main() {}\n"
	fs := "in vec2 uv;\nvoid main() {}\n"

	p, err := CompileAndLink(device, vs, fs)
	require.Error(t, err)
	require.NotNil(t, p)
	assert.False(t, p.Linked())

	var linkErr *LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Contains(t, linkErr.Log, "uv")

	var compileErr *CompileError
	assert.False(t, errors.As(err, &compileErr))
}

func TestBrokenProgramStillUsable(t *testing.T) {
	device := gpu.NewNullDevice()
	p, err := CompileAndLink(device, "", "")
	require.Error(t, err)

	assert.NotPanics(t, func() {
		p.Use()
		p.SetMat4("model", mgl32.Ident4())
		_ = p.GetMat4("model")
	})
}

func TestAliases(t *testing.T) {
	device := gpu.NewNullDevice()
	vs := `void main() {}
uniform mat4 _umodel;
`
	p, err := CompileAndLink(device, vs, "void main() {}")
	require.NoError(t, err)
	p.Use()

	p.SetMat4("model", mgl32.Ident4())
	assert.Equal(t, mgl32.Mat4{}, p.GetMat4("model"))

	p.SetAliases(map[string]string{"model": "_umodel"})
	p.SetMat4("model", mgl32.Ident4())
	assert.Equal(t, mgl32.Ident4(), p.GetMat4("model"))
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	fsPath := filepath.Join(dir, "shader.fs")
	require.NoError(t, os.WriteFile(fsPath, []byte(DefaultFragmentSource(false)), 0o644))

	vs, fs, err := LoadSources(filepath.Join(dir, "shader.vs"), fsPath)
	require.Error(t, err)
	assert.Empty(t, vs)
	assert.Equal(t, DefaultFragmentSource(false), fs)

	var readErr *FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, filepath.Join(dir, "shader.vs"), readErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	device := gpu.NewNullDevice()
	_, err = CompileAndLink(device, vs, fs)
	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.VertexStage, compileErr.Stage)
}
