package inputs

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/richinsley/spincube/gpu"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// TextureLoadError reports an image that could not be turned into a texture.
type TextureLoadError struct {
	Path string
	Err  error
}

func (e *TextureLoadError) Error() string {
	return fmt.Sprintf("failed to load texture %s: %v", e.Path, e.Err)
}

func (e *TextureLoadError) Unwrap() error { return e.Err }

// vflip vertically flips the provided RGBA image so that the first row of the
// file becomes the last row uploaded.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// toRGBA converts any decoded image to tightly packed RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// DecodeImage reads and decodes an image file.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// NewTexture uploads img to the device with the given sampler configuration.
func NewTexture(device gpu.Device, img image.Image, sampler gpu.Sampler) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("input image is nil")
	}
	rgba := toRGBA(img)
	if rgba.Rect.Dx() == 0 || rgba.Rect.Dy() == 0 {
		return 0, fmt.Errorf("image has no pixels")
	}
	if sampler.VFlip {
		rgba = vflip(rgba)
	}
	return device.CreateTexture(rgba, sampler), nil
}

// LoadTexture decodes the image at path and uploads it. On failure the
// texture handle is 0 and the error is a *TextureLoadError.
func LoadTexture(device gpu.Device, path string, sampler gpu.Sampler) (uint32, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return 0, &TextureLoadError{Path: path, Err: err}
	}
	id, err := NewTexture(device, img, sampler)
	if err != nil {
		return 0, &TextureLoadError{Path: path, Err: err}
	}
	b := img.Bounds()
	log.Printf("Loaded texture %s (%dx%d)", path, b.Dx(), b.Dy())
	return id, nil
}
