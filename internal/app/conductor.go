package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/snowglobe/internal/diagnostics"
)

// Step runs one scene tick with the hub's held keys. A failure is logged
// and reported to diag clients; the caller decides whether to keep going.
func (c *Core) Step(now time.Time) error {
	if err := c.Scene.Tick(now, c.Hub.Input()); err != nil {
		c.failures++
		last := c.Scene.Stats().FrameID
		log.Error().Err(err).Uint64("last_frame", last).Int("failures", c.failures).Msg("tick failed")
		c.Hub.PushDiag(diag.TickFailed(last, err))
		return err
	}
	return nil
}

// Failures counts ticks abandoned since start.
func (c *Core) Failures() int { return c.failures }

// Run ticks at c.FPS until ctx is done. Failed ticks are skipped, not fatal.
func (c *Core) Run(ctx context.Context) error {
	tick := time.NewTicker(time.Second / time.Duration(c.FPS))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-tick.C:
			_ = c.Step(now)
		}
	}
}
