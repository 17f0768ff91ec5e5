package app

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/snowglobe/internal/config"
	diag "github.com/coreman2200/snowglobe/internal/diagnostics"
	"github.com/coreman2200/snowglobe/internal/driver/fake"
	"github.com/coreman2200/snowglobe/internal/render"
	"github.com/coreman2200/snowglobe/internal/scene"
	"github.com/coreman2200/snowglobe/internal/ws"
)

const fallbackSink = "fake"

type Core struct {
	Scene *scene.Scene
	Eng   *render.Engine
	Reg   *render.Registry
	Hub   *ws.Hub
	Sink  string
	FPS   int

	failures int
}

// InitCore wires config -> scene -> engine -> sink. The hub is always
// created so /diag and /health work whichever sink draws.
func InitCore(cfg *config.Config) (*Core, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	hub := ws.NewHub()
	reg := render.NewRegistry()
	reg.Register("ws", hub)
	reg.Register(fallbackSink, &fake.Driver{})

	name := cfg.Sink
	sink, ok := reg.Get(name)
	if !ok {
		log.Warn().Str("sink", name).Strs("known", reg.List()).Msg("unknown sink; using fake")
		hub.PushDiag(diag.SinkFallback(name, fallbackSink))
		name = fallbackSink
		sink, _ = reg.Get(name)
	}
	hub.SinkName = name

	cc := cfg.ClearColor
	eng, err := render.NewEngine(sink, render.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]})
	if err != nil {
		return nil, err
	}

	s, err := scene.New(eng, sceneOptions(cfg))
	if err != nil {
		return nil, err
	}
	hub.Stats = s.Stats
	hub.OnResize = s.Resize

	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	log.Info().Str("sink", name).Int("fps", fps).Msg("core ready")
	return &Core{Scene: s, Eng: eng, Reg: reg, Hub: hub, Sink: name, FPS: fps}, nil
}

func sceneOptions(cfg *config.Config) scene.Options {
	opt := scene.Options{
		Capacity:    cfg.Capacity,
		Slots:       cfg.Slots,
		CameraSpeed: cfg.Camera.Speed,
		CameraFOV:   cfg.Camera.FOV,
		TimeScale:   cfg.TimeScale,
		EnvTextures: cfg.EnvTextures,
	}
	p := cfg.Camera.Position
	if p != (config.Vec3{}) {
		pos := mgl64.Vec3{p.X, p.Y, p.Z}
		opt.CameraPosition = &pos
	}
	for _, l := range cfg.Lights {
		opt.Lights = append(opt.Lights, scene.NewLight(mgl64.Vec4(l.Position), mgl64.Vec3(l.Power)))
	}
	return opt
}

// Close releases the active sink and the hub.
func (c *Core) Close() error {
	err := c.Eng.Close()
	if c.Sink != "ws" {
		_ = c.Hub.Close()
	}
	return err
}
