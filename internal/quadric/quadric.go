package quadric

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrSingularTransform is returned when a placement cannot be inverted.
var ErrSingularTransform = errors.New("non-invertible placement")

// singularEps bounds |det| relative to the product of the column norms,
// which is the largest |det| those columns could have.
const singularEps = 1e-12

// Material holds the shading constants the tracer reads per object.
type Material struct {
	Color       mgl64.Vec3 `yaml:"color" json:"color"`
	Specular    mgl64.Vec3 `yaml:"specular" json:"specular"`
	Shininess   float64    `yaml:"shininess" json:"shininess"`
	Reflectance float64    `yaml:"reflectance" json:"reflectance"`
}

// Quadric is an implicit surface bounded by a second quadric, the clipper.
// A homogeneous point p lies on the surface when pᵀ·Surface·p == 0 and is kept
// when pᵀ·Clipper·p <= 0. Both matrices are symmetric at all times.
type Quadric struct {
	ID       int
	Surface  mgl64.Mat4
	Clipper  mgl64.Mat4
	Material Material
}

// New returns an empty quadric for pool slot id. Both forms are zero.
func New(id int) Quadric {
	return Quadric{ID: id}
}

// Transform places the current surface and clipper with the affine map t,
// taking local points to world points (p' = t·p). It composes with whatever
// state the quadric already holds; call a preset first to place a canonical
// shape. On error the matrices are left untouched.
func (q *Quadric) Transform(t mgl64.Mat4) error {
	if !invertible(t) {
		return ErrSingularTransform
	}
	inv := t.Inv()
	invT := inv.Transpose()
	q.Surface = symmetrize(invT.Mul4(q.Surface).Mul4(inv))
	q.Clipper = symmetrize(invT.Mul4(q.Clipper).Mul4(inv))
	return nil
}

// invertible rejects collapsed axes at any scale, and NaN or Inf entries.
func invertible(t mgl64.Mat4) bool {
	bound := 1.0
	for c := 0; c < 4; c++ {
		bound *= t.Col(c).Len()
	}
	return abs(t.Det()) > singularEps*bound
}

// Contains reports whether p is inside the surface and the clip region.
func (q *Quadric) Contains(p mgl64.Vec4) bool {
	return Eval(q.Surface, p) <= 0 && Eval(q.Clipper, p) <= 0
}

// Eval returns the quadratic form pᵀ·m·p.
func Eval(m mgl64.Mat4, p mgl64.Vec4) float64 {
	return p.Dot(m.Mul4x1(p))
}

// Point lifts a 3D point into homogeneous coordinates.
func Point(x, y, z float64) mgl64.Vec4 {
	return mgl64.Vec4{x, y, z, 1}
}

// IsSymmetric reports whether m equals its transpose within eps.
func IsSymmetric(m mgl64.Mat4, eps float64) bool {
	for r := 0; r < 4; r++ {
		for c := r + 1; c < 4; c++ {
			if abs(m.At(r, c)-m.At(c, r)) > eps {
				return false
			}
		}
	}
	return true
}

// symmetrize averages m with its transpose so round-off never breaks symmetry.
func symmetrize(m mgl64.Mat4) mgl64.Mat4 {
	for r := 0; r < 4; r++ {
		for c := r + 1; c < 4; c++ {
			v := 0.5 * (m.At(r, c) + m.At(c, r))
			m.Set(r, c, v)
			m.Set(c, r, v)
		}
	}
	return m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
