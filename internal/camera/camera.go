package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/coreman2200/snowglobe/internal/render"
)

// Input is the set of keys held down this frame, by name ("W", "LEFT", ...).
type Input map[string]bool

const maxPitch = 1.5

var worldUp = mgl64.Vec3{0, 1, 0}

// Camera is a free-flying perspective camera. Yaw 0 and pitch 0 look down -z.
type Camera struct {
	Position    mgl64.Vec3
	Yaw, Pitch  float64
	FOV         float64 // vertical, radians
	AspectRatio float64
	Near, Far   float64
	Speed       float64 // units per second
	TurnSpeed   float64 // radians per second

	viewProj mgl64.Mat4
	rayDir   mgl64.Mat4
}

// New returns a camera at pos with the defaults the tracer was tuned for.
func New(pos mgl64.Vec3) *Camera {
	c := &Camera{
		Position:    pos,
		FOV:         1.0,
		AspectRatio: 1.0,
		Near:        0.1,
		Far:         1000,
		Speed:       5,
		TurnSpeed:   1,
	}
	c.Update()
	return c
}

// Ahead is the unit view direction.
func (c *Camera) Ahead() mgl64.Vec3 {
	return mgl64.Vec3{
		-math.Sin(c.Yaw) * math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw) * math.Cos(c.Pitch),
	}
}

func (c *Camera) Right() mgl64.Vec3 {
	return c.Ahead().Cross(worldUp).Normalize()
}

// Move advances the camera by dt seconds of held input.
func (c *Camera) Move(dt float64, in Input) {
	if dt <= 0 || len(in) == 0 {
		return
	}
	step := c.Speed * dt
	ahead, right := c.Ahead(), c.Right()
	if in["W"] {
		c.Position = c.Position.Add(ahead.Mul(step))
	}
	if in["S"] {
		c.Position = c.Position.Sub(ahead.Mul(step))
	}
	if in["D"] {
		c.Position = c.Position.Add(right.Mul(step))
	}
	if in["A"] {
		c.Position = c.Position.Sub(right.Mul(step))
	}
	if in["E"] {
		c.Position = c.Position.Add(worldUp.Mul(step))
	}
	if in["Q"] {
		c.Position = c.Position.Sub(worldUp.Mul(step))
	}

	turn := c.TurnSpeed * dt
	if in["LEFT"] {
		c.Yaw += turn
	}
	if in["RIGHT"] {
		c.Yaw -= turn
	}
	if in["UP"] {
		c.Pitch += turn
	}
	if in["DOWN"] {
		c.Pitch -= turn
	}
	c.Pitch = mgl64.Clamp(c.Pitch, -maxPitch, maxPitch)
}

func (c *Camera) SetAspectRatio(ar float64) {
	if ar > 0 {
		c.AspectRatio = ar
	}
}

// Update recomputes the view-projection matrix and the ray direction matrix,
// which maps clip-space (x, y, 1, 1) to a world-space ray direction.
func (c *Camera) Update() {
	view := mgl64.LookAtV(c.Position, c.Position.Add(c.Ahead()), worldUp)
	proj := mgl64.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
	c.viewProj = proj.Mul4(view)

	rot := view
	rot.SetCol(3, mgl64.Vec4{0, 0, 0, 1})
	c.rayDir = proj.Mul4(rot).Inv()
}

func (c *Camera) ViewProj() mgl64.Mat4 { return c.viewProj }
func (c *Camera) RayDir() mgl64.Mat4   { return c.rayDir }

func (c *Camera) Uniform() render.CameraUniform {
	return render.CameraUniform{
		Position:       render.Vec3(c.Position),
		ViewProjMatrix: render.Mat4(c.viewProj),
		RayDirMatrix:   render.Mat4(c.rayDir),
	}
}
