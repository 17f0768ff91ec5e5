package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/coreman2200/snowglobe/internal/quadric"
)

// Pose gives a part's local-to-world placement at scene time t.
type Pose func(t float64) mgl64.Mat4

// Static is a Pose that ignores time.
func Static(m mgl64.Mat4) Pose {
	return func(float64) mgl64.Mat4 { return m }
}

// Part is one quadric of a set piece: canonical shape, placement, material.
type Part struct {
	Name     string
	Shape    quadric.Shape
	Pose     Pose
	Material quadric.Material
	Animated bool
}

// Apply rebuilds q from scratch: preset, then placement at time t, then material.
func (pt Part) Apply(q *quadric.Quadric, t float64) error {
	if err := q.SetShape(pt.Shape); err != nil {
		return fmt.Errorf("%s: %w", pt.Name, err)
	}
	if err := q.Transform(pt.Pose(t)); err != nil {
		return fmt.Errorf("%s (slot %d): %w", pt.Name, q.ID, err)
	}
	q.Material = pt.Material
	return nil
}
