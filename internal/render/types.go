package render

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

type Color struct{ R, G, B, A float32 }

// QuadricUniform is the per-slot state the tracer reads from clippedQuadrics[ID].
type QuadricUniform struct {
	ID            int         `json:"id"`
	Surface       [16]float32 `json:"surface"`
	Clipper       [16]float32 `json:"clipper"`
	MaterialColor [3]float32  `json:"materialColor"`
	SpecularColor [3]float32  `json:"specularColor"`
	Shininess     float32     `json:"shininess"`
	Reflectance   float32     `json:"reflectance"`
}

type LightUniform struct {
	Index        int        `json:"index"`
	Position     [4]float32 `json:"position"`
	PowerDensity [3]float32 `json:"powerDensity"`
}

type CameraUniform struct {
	Position       [3]float32  `json:"position"`
	ViewProjMatrix [16]float32 `json:"viewProjMatrix"`
	RayDirMatrix   [16]float32 `json:"rayDirMatrix"`
}

// DrawCall names one renderable to draw this frame. Meshes and textures are
// resolved by the resource provider on the other side of the sink.
type DrawCall struct {
	Object   string      `json:"object"`
	Mesh     string      `json:"mesh"`
	Textures []string    `json:"textures,omitempty"`
	Model    [16]float32 `json:"model"`
}

// Frame is the complete state pushed to the sink once per tick.
type Frame struct {
	FrameID    uint64           `json:"frameId"`
	T          float64          `json:"t"`
	DT         float64          `json:"dt"`
	Cleared    bool             `json:"cleared"`
	ClearColor Color            `json:"clearColor"`
	Quadrics   []QuadricUniform `json:"quadrics"`
	Lights     []LightUniform   `json:"lights"`
	Camera     CameraUniform    `json:"camera"`
	Draws      []DrawCall       `json:"draws"`
}

// Uniforms is the flat numeric payload keyed by uniform name.
type Uniforms struct {
	Floats map[string][]float32
}

func NewUniforms() *Uniforms { return &Uniforms{Floats: map[string][]float32{}} }

func (u *Uniforms) Set(name string, v ...float32) {
	if u.Floats == nil {
		u.Floats = map[string][]float32{}
	}
	u.Floats[name] = append([]float32(nil), v...)
}

func (u *Uniforms) Get(name string) ([]float32, bool) {
	v, ok := u.Floats[name]
	return v, ok
}

// Names lists uniform names in sorted order.
func (u *Uniforms) Names() []string {
	out := make([]string, 0, len(u.Floats))
	for k := range u.Floats {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (q QuadricUniform) Encode(u *Uniforms) {
	p := fmt.Sprintf("clippedQuadrics[%d].", q.ID)
	u.Set(p+"surface", q.Surface[:]...)
	u.Set(p+"clipper", q.Clipper[:]...)
	u.Set(p+"materialColor", q.MaterialColor[:]...)
	u.Set(p+"specularColor", q.SpecularColor[:]...)
	u.Set(p+"shininess", q.Shininess)
	u.Set(p+"reflectance", q.Reflectance)
}

func (l LightUniform) Encode(u *Uniforms) {
	p := fmt.Sprintf("lights[%d].", l.Index)
	u.Set(p+"position", l.Position[:]...)
	u.Set(p+"powerDensity", l.PowerDensity[:]...)
}

func (c CameraUniform) Encode(u *Uniforms) {
	u.Set("camera.position", c.Position[:]...)
	u.Set("camera.viewProjMatrix", c.ViewProjMatrix[:]...)
	u.Set("camera.rayDirMatrix", c.RayDirMatrix[:]...)
}

// Uniforms flattens the whole frame.
func (f *Frame) Uniforms() *Uniforms {
	u := NewUniforms()
	u.Set("scene.time", float32(f.T))
	for _, q := range f.Quadrics {
		q.Encode(u)
	}
	for _, l := range f.Lights {
		l.Encode(u)
	}
	f.Camera.Encode(u)
	return u
}

// Mat4 converts to the column-major float32 layout GL expects.
func Mat4(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

func Vec3(v mgl64.Vec3) [3]float32 { return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])} }

func Vec4(v mgl64.Vec4) [4]float32 {
	return [4]float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// Sink receives finished frames (uniform upload + draw on the renderer side).
type Sink interface {
	Write(f *Frame) error
	Close() error
}

// Registry holds the sinks a process can select by name.
type Registry struct{ m map[string]Sink }

func NewRegistry() *Registry { return &Registry{m: map[string]Sink{}} }

func (r *Registry) Register(name string, s Sink) {
	if s == nil {
		return
	}
	r.m[name] = s
}

func (r *Registry) Get(name string) (Sink, bool) { s, ok := r.m[name]; return s, ok }
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
