package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkNull(t *testing.T, d *NullDevice, vs, fs string) uint32 {
	t.Helper()
	v, _, ok := d.CompileShader(VertexStage, vs)
	require.True(t, ok)
	f, _, ok := d.CompileShader(FragmentStage, fs)
	require.True(t, ok)
	id, infoLog, ok := d.LinkProgram(v, f)
	require.True(t, ok, infoLog)
	return id
}

func TestNullDeviceUniformLists(t *testing.T) {
	d := NewNullDevice()
	vs := `void main() {}
uniform vec3 a, b;
uniform highp vec2 x[4];
uniform float after;
`
	id := linkNull(t, d, vs, "void main() {}")
	d.UseProgram(id)

	for _, name := range []string{"a", "b", "x", "x[0]", "x[3]", "after"} {
		assert.GreaterOrEqual(t, d.UniformLocation(id, name), int32(0), name)
	}
	assert.Equal(t, int32(-1), d.UniformLocation(id, "x[4]"))
	assert.Equal(t, d.UniformLocation(id, "x"), d.UniformLocation(id, "x[0]"))
	assert.Equal(t, d.UniformLocation(id, "x[0]")+3, d.UniformLocation(id, "x[3]"))
	assert.Greater(t, d.UniformLocation(id, "after"), d.UniformLocation(id, "x[3]"))

	d.UniformFloats(d.UniformLocation(id, "b"), Vec3, []float32{1, 2, 3})
	d.UniformFloats(d.UniformLocation(id, "x[3]"), Vec2, []float32{4, 5})

	got := make([]float32, 3)
	d.GetUniformFloats(id, d.UniformLocation(id, "b"), got)
	assert.Equal(t, []float32{1, 2, 3}, got)

	got = make([]float32, 2)
	d.GetUniformFloats(id, d.UniformLocation(id, "x[3]"), got)
	assert.Equal(t, []float32{4, 5}, got)

	d.GetUniformFloats(id, d.UniformLocation(id, "a"), got)
	assert.Equal(t, []float32{0, 0}, got)
}

func TestNullDeviceLinkChecksVaryings(t *testing.T) {
	d := NewNullDevice()
	vs := `layout (location = 0) in vec3 aPos;
out vec2 TexCoord;
void main() {}
`
	linkNull(t, d, vs, "in vec2 TexCoord;\nout vec4 FragColor;\nvoid main() {}\n")

	v, _, _ := d.CompileShader(VertexStage, vs)
	f, _, _ := d.CompileShader(FragmentStage, "smooth in highp vec2 uv;\nvoid main() {}\n")
	_, infoLog, ok := d.LinkProgram(v, f)
	assert.False(t, ok)
	assert.Contains(t, infoLog, "uv")
}

func TestNullDeviceLinkNeedsCompiledStages(t *testing.T) {
	d := NewNullDevice()
	v, infoLog, ok := d.CompileShader(VertexStage, "")
	assert.False(t, ok)
	assert.Contains(t, infoLog, "no main function")
	f, _, _ := d.CompileShader(FragmentStage, "void main() {}")

	id, _, ok := d.LinkProgram(v, f)
	assert.False(t, ok)
	assert.Equal(t, int32(-1), d.UniformLocation(id, "model"))
}

func TestNullDeviceReadPixels(t *testing.T) {
	d := NewNullDevice()
	_, err := d.CreateRenderTarget(0, 4)
	assert.Error(t, err)

	rt, err := d.CreateRenderTarget(2, 1)
	require.NoError(t, err)
	d.Clear([4]float32{1, 0, 0.5, 1})

	assert.Error(t, d.ReadPixels(rt, make([]byte, 4)))
	px := make([]byte, 8)
	require.NoError(t, d.ReadPixels(rt, px))
	assert.Equal(t, []byte{255, 0, 128, 255, 255, 0, 128, 255}, px)
}
