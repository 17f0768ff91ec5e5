package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	q "github.com/coreman2200/snowglobe/internal/quadric"
)

// Slots assigns pool ids to set pieces. No id may appear twice.
type Slots struct {
	Snowman [6]int `yaml:"snowman"` // bottom, middle, head, left eye, right eye, nose
	Ground  int    `yaml:"ground"`
	Fir     [4]int `yaml:"fir"` // tiers bottom to top, then trunk
	Baubles [4]int `yaml:"baubles"`
}

// DefaultSlots is the reference allocation for a 15-slot pool.
func DefaultSlots() Slots {
	return Slots{
		Snowman: [6]int{1, 2, 0, 8, 9, 10},
		Ground:  3,
		Fir:     [4]int{4, 5, 6, 7},
		Baubles: [4]int{11, 12, 13, 14},
	}
}

var (
	white  = mgl64.Vec3{1, 1, 1}
	black  = mgl64.Vec3{0, 0, 0}
	orange = mgl64.Vec3{1, 0.58, 0}
	green  = mgl64.Vec3{0, 1, 0}
	bark   = mgl64.Vec3{0.89, 0.62, 0.06}
)

func matte(c mgl64.Vec3) q.Material {
	return q.Material{Color: c, Specular: white}
}

var mirror = q.Material{Color: white, Shininess: 1, Reflectance: 1}

type Snowman struct{ Bottom, Middle, Head, LeftEye, RightEye, Nose Handle }

type Ground struct{ Plane Handle }

type Fir struct {
	Tiers [3]Handle
	Trunk Handle
}

type Baubles struct{ Items [4]Handle }

// place applies each part to its handle at t=0 and hands animated parts to u.
func place(piece string, hs []Handle, parts []Part, u *Updater) error {
	if len(hs) != len(parts) {
		return fmt.Errorf("%s: %d slots for %d parts", piece, len(hs), len(parts))
	}
	for i, pt := range parts {
		if err := pt.Apply(hs[i].Quadric(), 0); err != nil {
			return fmt.Errorf("%s: %w", piece, err)
		}
		if pt.Animated {
			u.Add(hs[i], pt)
		}
	}
	log.Debug().Str("piece", piece).Ints("slots", ids(hs...)).Msg("set piece built")
	return nil
}

func snowmanParts() []Part {
	ball := func(name string, s, x, y, z float64, c mgl64.Vec3) Part {
		return Part{
			Name:     name,
			Shape:    q.Sphere,
			Pose:     Static(q.NewPlacement().UniformScale(s).Translate(x, y, z).Mat4()),
			Material: matte(c),
		}
	}
	return []Part{
		ball("snowman.bottom", 1, 0, 2, 0, white),
		ball("snowman.middle", 0.8, 0, 3, 0, white),
		ball("snowman.head", 0.6, 0, 4, 0, white),
		ball("snowman.leftEye", 0.1, -0.2, 4.2, 0.5, black),
		ball("snowman.rightEye", 0.1, 0.2, 4.2, 0.5, black),
		{
			Name:  "snowman.nose",
			Shape: q.Cone,
			Pose: Static(q.NewPlacement().
				Rotate(math.Pi, mgl64.Vec3{0, -1, 1}).
				Scale(0.05, 0.05, 0.24).
				Translate(0, 4, 1).Mat4()),
			Material: matte(orange),
		},
	}
}

// buildSnowman shapes the six snowman slots.
func buildSnowman(hs [6]Handle, u *Updater) (Snowman, error) {
	if err := place("snowman", hs[:], snowmanParts(), u); err != nil {
		return Snowman{}, err
	}
	return Snowman{hs[0], hs[1], hs[2], hs[3], hs[4], hs[5]}, nil
}

func groundParts() []Part {
	return []Part{{
		Name:     "ground",
		Shape:    q.InfiniteSurface,
		Pose:     Static(mgl64.Ident4()),
		Material: q.Material{Color: white, Specular: white, Shininess: 10, Reflectance: 1},
	}}
}

// buildGround lays the reflective ground plane y = 0.
func buildGround(h Handle, u *Updater) (Ground, error) {
	if err := place("ground", []Handle{h}, groundParts(), u); err != nil {
		return Ground{}, err
	}
	return Ground{Plane: h}, nil
}

// tierPose flips the unit cone upside down, scales it, sways it about z and
// moves it onto the trunk.
func tierPose(sx, sy, sz float64, sway func(t float64) float64, y float64) Pose {
	return func(t float64) mgl64.Mat4 {
		return q.NewPlacement().
			RotateZ(math.Pi).
			Scale(sx, sy, sz).
			RotateZ(sway(t)).
			Translate(10, y, 0).Mat4()
	}
}

func firParts() []Part {
	tier := func(name string, pose Pose) Part {
		return Part{Name: name, Shape: q.Cone, Pose: pose, Material: matte(green), Animated: true}
	}
	return []Part{
		tier("fir.tier0", tierPose(0.8, 1, 0.8, func(t float64) float64 { return math.Cos(t) / 23 }, 4)),
		tier("fir.tier1", tierPose(0.7, 0.7, 0.7, func(t float64) float64 { return -math.Cos(t) / 20 }, 4.6)),
		tier("fir.tier2", tierPose(0.5, 0.5, 0.5, func(t float64) float64 { return math.Cos(t) / 10 }, 5.1)),
		{
			Name:     "fir.trunk",
			Shape:    q.Cylinder,
			Pose:     Static(q.NewPlacement().Scale(0.3, 1, 0.3).Translate(10, 1, 0).Mat4()),
			Material: matte(bark),
		},
	}
}

// buildFir shapes three swaying cone tiers and a trunk.
func buildFir(hs [4]Handle, u *Updater) (Fir, error) {
	if err := place("fir", hs[:], firParts(), u); err != nil {
		return Fir{}, err
	}
	return Fir{Tiers: [3]Handle{hs[0], hs[1], hs[2]}, Trunk: hs[3]}, nil
}

func spinPose(sx, sy, sz float64, rate float64, axis mgl64.Vec3, x, y, z float64) Pose {
	return func(t float64) mgl64.Mat4 {
		return q.NewPlacement().
			Scale(sx, sy, sz).
			Rotate(rate*t, axis).
			Translate(x, y, z).Mat4()
	}
}

func baubleParts() []Part {
	spin := func(name string, pose Pose) Part {
		return Part{Name: name, Shape: q.Sphere, Pose: pose, Material: mirror, Animated: true}
	}
	return []Part{
		spin("bauble0", spinPose(0.3, 0.5, 0.3, 1, mgl64.Vec3{1, 1, 1}, 5, 5.5, 1)),
		spin("bauble1", spinPose(0.4, 0.3, 0.1, -2, mgl64.Vec3{0, 1, 1}, 3, 7, 2)),
		spin("bauble2", spinPose(0.1, 0.8, 0.1, 5, mgl64.Vec3{1, 0, 1}, 2, 6, 1)),
		{
			Name:     "bauble3",
			Shape:    q.Sphere,
			Pose:     Static(q.NewPlacement().UniformScale(0.1).Translate(10, 5.3, 0).Mat4()),
			Material: mirror,
		},
	}
}

// buildBaubles shapes the mirrored ornaments; three of them spin.
func buildBaubles(hs [4]Handle, u *Updater) (Baubles, error) {
	if err := place("baubles", hs[:], baubleParts(), u); err != nil {
		return Baubles{}, err
	}
	return Baubles{Items: hs}, nil
}
