package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Options are the command line flags.
type Options struct {
	ConfigFile *string
	Help       *bool
	Mode       *string
	Strict     *bool // shader compile/link failures abort startup
	ESSL       *bool // shader files are GLSL ES 3.00 and must be translated
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFmpegPath *string
	Frames     *int // frames to run in headless mode
}

const (
	ModeInteractive = "interactive"
	ModeRecord      = "record"
	ModeHeadless    = "headless"
)

// TextureConfig describes one texture unit's image and sampler.
type TextureConfig struct {
	Path   string `toml:"path"`
	Wrap   string `toml:"wrap"`
	Filter string `toml:"filter"`
	FlipY  bool   `toml:"flip_y"`
}

// Config holds the window and scene tunables read from the TOML file.
type Config struct {
	Width            int           `toml:"width"`
	Height           int           `toml:"height"`
	Title            string        `toml:"title"`
	VertexShader     string        `toml:"vertex_shader"`
	FragmentShader   string        `toml:"fragment_shader"`
	VertexShaderES   string        `toml:"vertex_shader_es"`   // GLSL ES 3.00, used with -essl
	FragmentShaderES string        `toml:"fragment_shader_es"` // GLSL ES 3.00, used with -essl
	Texture1         TextureConfig `toml:"texture1"`
	Texture2         TextureConfig `toml:"texture2"`
	Icon             string        `toml:"icon"`
	ClearColor       [4]float32    `toml:"clear_color"`
	CameraSpeed      float32       `toml:"camera_speed"`
	Sensitivity      float32       `toml:"mouse_sensitivity"`
	LookOnKeyUp      bool          `toml:"look_on_key_up"`
}

// DefaultConfig returns the built-in window and scene settings.
func DefaultConfig() *Config {
	return &Config{
		Width:            800,
		Height:           800,
		Title:            ":3 UwU XD SillyWindow",
		VertexShader:     "shaders/shader.vs",
		FragmentShader:   "shaders/shader.fs",
		VertexShaderES:   "shaders/shader_es.vs",
		FragmentShaderES: "shaders/shader_es.fs",
		Texture1: TextureConfig{
			Path:   "assets/milly.png",
			Wrap:   "mirror",
			Filter: "mipmap",
			FlipY:  true,
		},
		Texture2: TextureConfig{
			Path:   "assets/boba.png",
			Wrap:   "clamp",
			Filter: "mipmap",
			FlipY:  true,
		},
		Icon:        "assets/icon.png",
		ClearColor:  [4]float32{0.4, 0.3, 0.5, 1.0},
		CameraSpeed: 2.5,
		Sensitivity: 0.1,
	}
}

// LoadConfig reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config %s at %d:%d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ShaderPaths returns the vertex and fragment source paths, the GLSL ES pair
// when essl is set.
func (c *Config) ShaderPaths(essl bool) (string, string) {
	if essl {
		return c.VertexShaderES, c.FragmentShaderES
	}
	return c.VertexShader, c.FragmentShader
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Sensitivity < 0 {
		return fmt.Errorf("mouse_sensitivity must not be negative")
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d] must be in [0, 1], got %g", i, v)
		}
	}
	return nil
}
