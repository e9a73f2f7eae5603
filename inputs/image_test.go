package inputs

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/spincube/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{uint8(x * 10), uint8(y * 10), 0, 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	writePNG(t, path, 4, 2)

	device := gpu.NewNullDevice()
	sampler := gpu.Sampler{Wrap: gpu.WrapMirroredRepeat, Filter: gpu.FilterMipmap}
	id, err := LoadTexture(device, path, sampler)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, ok := device.TextureSampler(id)
	require.True(t, ok)
	assert.Equal(t, sampler, got)
}

func TestLoadTextureMissing(t *testing.T) {
	device := gpu.NewNullDevice()
	id, err := LoadTexture(device, filepath.Join(t.TempDir(), "nope.png"), gpu.Sampler{})
	assert.Zero(t, id)

	var loadErr *TextureLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTextureNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	_, err := LoadTexture(gpu.NewNullDevice(), path, gpu.Sampler{})
	var loadErr *TextureLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestVFlip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 2))
	src.Set(0, 0, color.RGBA{255, 0, 0, 255})
	src.Set(0, 1, color.RGBA{0, 0, 255, 255})

	flipped := vflip(src)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, flipped.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, flipped.RGBAAt(0, 1))
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.NRGBA{1, 2, 3, 255})
	rgba := toRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), rgba.Rect)
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, rgba.RGBAAt(0, 0))
}

func TestParseSampler(t *testing.T) {
	s, err := ParseSampler("mirror", "mipmap", false)
	require.NoError(t, err)
	assert.Equal(t, gpu.Sampler{Wrap: gpu.WrapMirroredRepeat, Filter: gpu.FilterMipmap}, s)

	s, err = ParseSampler("clamp", "nearest", true)
	require.NoError(t, err)
	assert.Equal(t, gpu.Sampler{Wrap: gpu.WrapClampToEdge, Filter: gpu.FilterNearest, VFlip: true}, s)

	_, err = ParseSampler("wobble", "linear", false)
	assert.Error(t, err)
	_, err = ParseSampler("repeat", "cubic", false)
	assert.Error(t, err)
}

func TestScaleIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writePNG(t, path, 64, 64)

	icons, err := IconImages(path)
	require.NoError(t, err)
	require.Len(t, icons, len(IconSizes))
	for i, icon := range icons {
		assert.Equal(t, IconSizes[i], icon.Bounds().Dx())
		assert.Equal(t, IconSizes[i], icon.Bounds().Dy())
	}
}
