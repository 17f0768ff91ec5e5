package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/snowglobe/internal/scene"
)

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type Light struct {
	Position [4]float64 `yaml:"position"` // w == 0 for directional
	Power    [3]float64 `yaml:"power"`
}

type CameraCfg struct {
	Position Vec3    `yaml:"position"`
	Speed    float64 `yaml:"speed"`
	FOV      float64 `yaml:"fov"`
}

type Config struct {
	Sink      string  `yaml:"sink"` // "ws" | "fake"
	Addr      string  `yaml:"addr"`
	FPS       int     `yaml:"fps"`
	TimeScale float64 `yaml:"time_scale"`
	Capacity  int     `yaml:"capacity"`

	ClearColor [4]float32 `yaml:"clear_color"`
	Camera     CameraCfg  `yaml:"camera"`
	Lights     []Light    `yaml:"lights,omitempty"`

	EnvTextures []string     `yaml:"env_textures,omitempty"`
	Slots       *scene.Slots `yaml:"slots,omitempty"`
}

// Default is the reference snow globe setup.
func Default() *Config {
	return &Config{
		Sink:       "ws",
		Addr:       ":8080",
		FPS:        60,
		TimeScale:  1,
		Capacity:   15,
		ClearColor: [4]float32{0.3, 0, 0.3, 1},
		Camera: CameraCfg{
			Position: Vec3{X: 0, Y: 5, Z: 25},
			Speed:    5,
			FOV:      1,
		},
	}
}

// Merge lays the non-zero fields of src over dst.
func Merge(dst, src *Config) {
	dst.Sink = firstNonZeroString(src.Sink, dst.Sink)
	dst.Addr = firstNonZeroString(src.Addr, dst.Addr)
	if src.FPS > 0 {
		dst.FPS = src.FPS
	}
	dst.TimeScale = firstNonZeroFloat(src.TimeScale, dst.TimeScale)
	if src.Capacity > 0 {
		dst.Capacity = src.Capacity
	}
	if src.ClearColor != ([4]float32{}) {
		dst.ClearColor = src.ClearColor
	}
	if src.Camera.Position != (Vec3{}) {
		dst.Camera.Position = src.Camera.Position
	}
	dst.Camera.Speed = firstNonZeroFloat(src.Camera.Speed, dst.Camera.Speed)
	dst.Camera.FOV = firstNonZeroFloat(src.Camera.FOV, dst.Camera.FOV)
	if len(src.Lights) > 0 {
		dst.Lights = src.Lights
	}
	if len(src.EnvTextures) > 0 {
		dst.EnvTextures = src.EnvTextures
	}
	if src.Slots != nil {
		dst.Slots = src.Slots
	}
}

func firstNonZeroFloat(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func firstNonZeroString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
