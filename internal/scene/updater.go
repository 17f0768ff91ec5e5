package scene

import (
	"time"
)

// Clock measures scene time from the first frame.
type Clock struct {
	TimeScale float64

	first, last time.Time
	started     bool
}

// Advance records a frame at now and returns seconds since the first frame
// and since the previous one. The first call returns (0, 0).
func (c *Clock) Advance(now time.Time) (t, dt float64) {
	if !c.started {
		c.first, c.last, c.started = now, now, true
	}
	scale := 1.0
	if c.TimeScale != 0 {
		scale = c.TimeScale
	}
	t = now.Sub(c.first).Seconds() * scale
	dt = now.Sub(c.last).Seconds() * scale
	c.last = now
	return t, dt
}

// Reset makes the next Advance the first frame again.
func (c *Clock) Reset() { c.started = false }

type animated struct {
	h    Handle
	part Part
}

// Updater re-derives the animated slots each frame. Every slot is rebuilt
// from its preset, so a frame's geometry depends on t alone.
type Updater struct {
	items []animated
}

func (u *Updater) Add(h Handle, p Part) {
	u.items = append(u.items, animated{h: h, part: p})
}

func (u *Updater) Len() int { return len(u.items) }

// Slots lists the animated slot ids in registration order.
func (u *Updater) Slots() []int {
	out := make([]int, len(u.items))
	for i, it := range u.items {
		out[i] = it.h.ID()
	}
	return out
}

// Update applies every animated part at time t, stopping at the first error.
func (u *Updater) Update(t float64) error {
	for _, it := range u.items {
		if err := it.part.Apply(it.h.Quadric(), t); err != nil {
			return err
		}
	}
	return nil
}
