package quadric

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownShape is returned by SetShape for a Shape with no preset.
var ErrUnknownShape = errors.New("unknown shape")

// Shape names a canonical unit primitive.
type Shape string

const (
	Sphere          Shape = "sphere"
	Cylinder        Shape = "cylinder"
	Cone            Shape = "cone"
	InfiniteSurface Shape = "infinite"
)

// sym builds a symmetric matrix from its upper triangle, row by row.
func sym(a00, a01, a02, a03, a11, a12, a13, a22, a23, a33 float64) mgl64.Mat4 {
	// mgl64 is column-major; symmetric input makes the layout irrelevant.
	return mgl64.Mat4{
		a00, a01, a02, a03,
		a01, a11, a12, a13,
		a02, a12, a22, a23,
		a03, a13, a23, a33,
	}
}

// MakeUnitSphere resets to the unit ball boundary x²+y²+z² = 1.
// The clipper is the slab |x| <= 1, which contains the whole ball.
func (q *Quadric) MakeUnitSphere() {
	q.Surface = sym(1, 0, 0, 0, 1, 0, 0, 1, 0, -1)
	q.Clipper = sym(1, 0, 0, 0, 0, 0, 0, 0, 0, -1)
}

// MakeUnitCylinder resets to x²+z² = 1 clipped to |y| <= 1.
func (q *Quadric) MakeUnitCylinder() {
	q.Surface = sym(1, 0, 0, 0, 0, 0, 0, 1, 0, -1)
	q.Clipper = sym(0, 0, 0, 0, 1, 0, 0, 0, 0, -1)
}

// MakeUnitCone resets to x²+z² = y² clipped to 0 <= y <= 2 (y² - 2y <= 0),
// so only the upper nappe remains.
func (q *Quadric) MakeUnitCone() {
	q.Surface = sym(1, 0, 0, 0, -1, 0, 0, 1, 0, 0)
	q.Clipper = sym(0, 0, 0, 0, 1, 0, -1, 0, 0, 0)
}

// MakeInfiniteSurface resets to the plane y = 0, stored as y² = 0, unclipped.
func (q *Quadric) MakeInfiniteSurface() {
	q.Surface = sym(0, 0, 0, 0, 1, 0, 0, 0, 0, 0)
	q.Clipper = mgl64.Mat4{}
}

// SetShape applies the preset for s.
func (q *Quadric) SetShape(s Shape) error {
	switch s {
	case Sphere:
		q.MakeUnitSphere()
	case Cylinder:
		q.MakeUnitCylinder()
	case Cone:
		q.MakeUnitCone()
	case InfiniteSurface:
		q.MakeInfiniteSurface()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
	return nil
}
