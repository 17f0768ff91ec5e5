package fake

import (
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/snowglobe/internal/render"
)

// Driver records every frame it receives and logs a compact summary, useful for headless runs and tests.
type Driver struct {
	Count  int
	Frames []*render.Frame
	Keep   int // frames to retain; 0 keeps only the last
	Err    error
	Quiet  bool
	closed bool
}

func (d *Driver) Write(f *render.Frame) error {
	if d.Err != nil {
		return d.Err
	}
	d.Count++
	keep := d.Keep
	if keep <= 0 {
		keep = 1
	}
	d.Frames = append(d.Frames, f)
	if len(d.Frames) > keep {
		d.Frames = d.Frames[len(d.Frames)-keep:]
	}
	if !d.Quiet {
		log.Debug().
			Uint64("frame", f.FrameID).
			Float64("t", f.T).
			Float64("dt", f.DT).
			Int("quadrics", len(f.Quadrics)).
			Int("lights", len(f.Lights)).
			Int("draws", len(f.Draws)).
			Msg("frame")
	}
	return nil
}

// Last returns the most recent frame, or nil.
func (d *Driver) Last() *render.Frame {
	if len(d.Frames) == 0 {
		return nil
	}
	return d.Frames[len(d.Frames)-1]
}

func (d *Driver) Close() error {
	d.closed = true
	return nil
}

func (d *Driver) Closed() bool { return d.closed }
