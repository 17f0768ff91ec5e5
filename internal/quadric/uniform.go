package quadric

import "github.com/coreman2200/snowglobe/internal/render"

// Uniform maps the quadric onto its slot in the renderer's uniform array.
func (q *Quadric) Uniform() render.QuadricUniform {
	return render.QuadricUniform{
		ID:            q.ID,
		Surface:       render.Mat4(q.Surface),
		Clipper:       render.Mat4(q.Clipper),
		MaterialColor: render.Vec3(q.Material.Color),
		SpecularColor: render.Vec3(q.Material.Specular),
		Shininess:     float32(q.Material.Shininess),
		Reflectance:   float32(q.Material.Reflectance),
	}
}
