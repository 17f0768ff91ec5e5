package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/coreman2200/snowglobe/internal/render"
)

// Light is a point (w != 0) or directional (w == 0) light. Position is kept
// normalized as a 4-vector, which is what the tracer expects.
type Light struct {
	Position     mgl64.Vec4
	PowerDensity mgl64.Vec3
}

func NewLight(pos mgl64.Vec4, power mgl64.Vec3) Light {
	if pos.Len() > 0 {
		pos = pos.Normalize()
	}
	return Light{Position: pos, PowerDensity: power}
}

// DefaultLights is a dim lamp over the fir and a cool sky light.
func DefaultLights() []Light {
	return []Light{
		NewLight(mgl64.Vec4{10, 8, 0, 1}, mgl64.Vec3{0.02, 0.02, 0.02}),
		NewLight(mgl64.Vec4{1, 1, 1, 0}, mgl64.Vec3{0.4, 0.46, 0.5}),
	}
}

func (l Light) Uniform(index int) render.LightUniform {
	return render.LightUniform{
		Index:        index,
		Position:     render.Vec4(l.Position),
		PowerDensity: render.Vec3(l.PowerDensity),
	}
}
