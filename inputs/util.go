package inputs

import (
	"fmt"

	"github.com/richinsley/spincube/gpu"
)

// ParseWrap converts a config wrap name to a wrap mode.
func ParseWrap(wrap string) (gpu.Wrap, error) {
	switch wrap {
	case "", "repeat":
		return gpu.WrapRepeat, nil
	case "mirror", "mirrored_repeat":
		return gpu.WrapMirroredRepeat, nil
	case "clamp", "clamp_to_edge":
		return gpu.WrapClampToEdge, nil
	default:
		return gpu.WrapRepeat, fmt.Errorf("unknown wrap mode %q", wrap)
	}
}

// ParseFilter converts a config filter name to a filter mode.
func ParseFilter(filter string) (gpu.Filter, error) {
	switch filter {
	case "mipmap":
		return gpu.FilterMipmap, nil
	case "", "linear":
		return gpu.FilterLinear, nil
	case "nearest":
		return gpu.FilterNearest, nil
	default:
		return gpu.FilterLinear, fmt.Errorf("unknown filter mode %q", filter)
	}
}

// ParseSampler builds a sampler from config names.
func ParseSampler(wrap, filter string, flip bool) (gpu.Sampler, error) {
	w, err := ParseWrap(wrap)
	if err != nil {
		return gpu.Sampler{}, err
	}
	f, err := ParseFilter(filter)
	if err != nil {
		return gpu.Sampler{}, err
	}
	return gpu.Sampler{Wrap: w, Filter: f, VFlip: flip}, nil
}
