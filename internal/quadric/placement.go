package quadric

import "github.com/go-gl/mathgl/mgl64"

// Placement accumulates an affine map step by step. Each call is applied
// after the ones before it, so Scale(..).Rotate(..).Translate(..) scales
// first and translates last.
type Placement struct {
	m mgl64.Mat4
}

// NewPlacement starts from the identity.
func NewPlacement() *Placement {
	return &Placement{m: mgl64.Ident4()}
}

func (p *Placement) then(step mgl64.Mat4) *Placement {
	p.m = step.Mul4(p.m)
	return p
}

func (p *Placement) Scale(x, y, z float64) *Placement {
	return p.then(mgl64.Scale3D(x, y, z))
}

func (p *Placement) UniformScale(s float64) *Placement {
	return p.Scale(s, s, s)
}

// Rotate turns by angle radians about axis. A zero axis is a no-op.
func (p *Placement) Rotate(angle float64, axis mgl64.Vec3) *Placement {
	if axis.Len() == 0 {
		return p
	}
	return p.then(mgl64.HomogRotate3D(angle, axis.Normalize()))
}

// RotateZ turns about the z axis.
func (p *Placement) RotateZ(angle float64) *Placement {
	return p.then(mgl64.HomogRotate3DZ(angle))
}

func (p *Placement) Translate(x, y, z float64) *Placement {
	return p.then(mgl64.Translate3D(x, y, z))
}

// Then appends an arbitrary affine step.
func (p *Placement) Then(m mgl64.Mat4) *Placement {
	return p.then(m)
}

// Mat4 returns the accumulated local-to-world map.
func (p *Placement) Mat4() mgl64.Mat4 {
	return p.m
}
