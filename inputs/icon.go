package inputs

import (
	"image"

	"golang.org/x/image/draw"
)

// IconSizes are the square sizes offered to the window system for the icon.
var IconSizes = []int{16, 32, 48}

// IconImages decodes the icon at path and returns it scaled to each of
// IconSizes, largest last.
func IconImages(path string) ([]image.Image, error) {
	src, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ScaleIcon(src), nil
}

// ScaleIcon scales src to every size in IconSizes.
func ScaleIcon(src image.Image) []image.Image {
	icons := make([]image.Image, 0, len(IconSizes))
	for _, size := range IconSizes {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		icons = append(icons, dst)
	}
	return icons
}
