package scene

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/snowglobe/internal/camera"
	"github.com/coreman2200/snowglobe/internal/quadric"
	"github.com/coreman2200/snowglobe/internal/render"
)

// DefaultCapacity matches the clippedQuadrics array in the trace shader.
const DefaultCapacity = 15

// Options configure a Scene. Zero fields take the defaults.
type Options struct {
	Capacity       int
	Slots          *Slots
	Lights         []Light
	CameraPosition *mgl64.Vec3
	CameraSpeed    float64
	CameraFOV      float64
	TimeScale      float64
	EnvTextures    []string
}

func DefaultEnvTextures() []string {
	return []string{
		"media/posx.jpg", "media/negx.jpg",
		"media/posy.jpg", "media/negy.jpg",
		"media/posz.jpg", "media/negz.jpg",
	}
}

// Renderable is an object drawn every frame.
type Renderable interface {
	Update()
	DrawCall() render.DrawCall
}

// Quad is a mesh object with a model transform, e.g. the full-screen trace quad.
type Quad struct {
	Name     string
	Mesh     string
	Textures []string
	Position mgl64.Vec3
	Scale    mgl64.Vec3

	model mgl64.Mat4
}

func (o *Quad) Update() {
	s := o.Scale
	if s == (mgl64.Vec3{}) {
		s = mgl64.Vec3{1, 1, 1}
	}
	o.model = quadric.NewPlacement().Scale(s[0], s[1], s[2]).Translate(o.Position[0], o.Position[1], o.Position[2]).Mat4()
}

func (o *Quad) Model() mgl64.Mat4 { return o.model }

func (o *Quad) DrawCall() render.DrawCall {
	return render.DrawCall{Object: o.Name, Mesh: o.Mesh, Textures: o.Textures, Model: render.Mat4(o.model)}
}

// Stats summarizes the last drawn frame.
type Stats struct {
	FrameID  uint64  `json:"frame_id"`
	T        float64 `json:"t"`
	DT       float64 `json:"dt"`
	Slots    int     `json:"slots"`
	Animated int     `json:"animated"`
	Lights   int     `json:"lights"`
	TotalMS  float64 `json:"total_ms"`
}

// Scene owns the quadric pool, lights, camera and renderables, and runs the
// per-frame pipeline into the render engine.
type Scene struct {
	mu sync.Mutex

	pool    *Pool
	lights  []Light
	camera  *camera.Camera
	objects []Renderable
	clock   Clock
	updater Updater
	engine  *render.Engine

	Snowman Snowman
	Ground  Ground
	Fir     Fir
	Baubles Baubles

	stats Stats
}

// New allocates the pool and builds every set piece in order:
// snowman, ground, fir, lights, baubles.
func New(eng *render.Engine, opt Options) (*Scene, error) {
	if eng == nil {
		return nil, render.ErrNoSink
	}
	capacity := opt.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	pool, err := NewPool(capacity)
	if err != nil {
		return nil, err
	}
	slots := DefaultSlots()
	if opt.Slots != nil {
		slots = *opt.Slots
	}
	camPos := mgl64.Vec3{0, 5, 25}
	if opt.CameraPosition != nil {
		camPos = *opt.CameraPosition
	}
	env := opt.EnvTextures
	if env == nil {
		env = DefaultEnvTextures()
	}

	cam := camera.New(camPos)
	if opt.CameraSpeed > 0 {
		cam.Speed = opt.CameraSpeed
	}
	if opt.CameraFOV > 0 {
		cam.FOV = opt.CameraFOV
	}
	cam.Update()

	s := &Scene{
		pool:   pool,
		camera: cam,
		engine: eng,
		clock:  Clock{TimeScale: opt.TimeScale},
	}
	s.objects = append(s.objects, &Quad{Name: "traceQuad", Mesh: "texturedQuad", Textures: env})

	if err := s.compose(slots, opt.Lights); err != nil {
		return nil, err
	}
	log.Info().
		Int("capacity", pool.Len()).
		Ints("animated", s.updater.Slots()).
		Int("lights", len(s.lights)).
		Msg("scene composed")
	return s, nil
}

func (s *Scene) compose(slots Slots, lights []Light) error {
	hs, err := s.pool.Claim("snowman", slots.Snowman[:]...)
	if err != nil {
		return err
	}
	var snow [6]Handle
	copy(snow[:], hs)
	if s.Snowman, err = buildSnowman(snow, &s.updater); err != nil {
		return err
	}

	if hs, err = s.pool.Claim("ground", slots.Ground); err != nil {
		return err
	}
	if s.Ground, err = buildGround(hs[0], &s.updater); err != nil {
		return err
	}

	if hs, err = s.pool.Claim("fir", slots.Fir[:]...); err != nil {
		return err
	}
	var fir [4]Handle
	copy(fir[:], hs)
	if s.Fir, err = buildFir(fir, &s.updater); err != nil {
		return err
	}

	if lights == nil {
		lights = DefaultLights()
	}
	s.lights = append([]Light(nil), lights...)

	if hs, err = s.pool.Claim("baubles", slots.Baubles[:]...); err != nil {
		return err
	}
	var baubles [4]Handle
	copy(baubles[:], hs)
	if s.Baubles, err = buildBaubles(baubles, &s.updater); err != nil {
		return err
	}
	return nil
}

// Tick runs one frame: advance time, re-derive animated slots, clear, move
// the camera, refresh renderables, then push the full state and draw. If a
// step fails the frame is abandoned before anything is drawn.
func (s *Scene) Tick(now time.Time, in camera.Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, dt := s.clock.Advance(now)

	if err := s.updater.Update(t); err != nil {
		return fmt.Errorf("update at t=%.3f: %w", t, err)
	}

	s.engine.Clear()

	s.camera.Move(dt, in)
	s.camera.Update()

	for _, o := range s.objects {
		o.Update()
	}

	f := s.frame(t, dt)
	if err := s.engine.Draw(f); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	s.stats = Stats{
		FrameID:  f.FrameID,
		T:        t,
		DT:       dt,
		Slots:    len(f.Quadrics),
		Animated: s.updater.Len(),
		Lights:   len(f.Lights),
		TotalMS:  s.engine.Last.TotalMS,
	}
	return nil
}

func (s *Scene) frame(t, dt float64) *render.Frame {
	f := &render.Frame{
		T:        t,
		DT:       dt,
		Quadrics: make([]render.QuadricUniform, 0, s.pool.Len()),
		Lights:   make([]render.LightUniform, 0, len(s.lights)),
		Camera:   s.camera.Uniform(),
		Draws:    make([]render.DrawCall, 0, len(s.objects)),
	}
	s.pool.Each(func(q *quadric.Quadric) {
		f.Quadrics = append(f.Quadrics, q.Uniform())
	})
	for i, l := range s.lights {
		f.Lights = append(f.Lights, l.Uniform(i))
	}
	for _, o := range s.objects {
		f.Draws = append(f.Draws, o.DrawCall())
	}
	return f
}

// Resize updates the camera for a new viewport.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.SetAspectRatio(float64(width) / float64(height))
}

func (s *Scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Lights returns a copy of the scene lights.
func (s *Scene) Lights() []Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Light(nil), s.lights...)
}

// Camera returns a snapshot of the camera; the scene keeps the only live one.
func (s *Scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.camera
}

func (s *Scene) Pool() *Pool               { return s.pool }
func (s *Scene) AnimatedSlots() []int      { return s.updater.Slots() }
func (s *Scene) Renderables() []Renderable { return s.objects }
