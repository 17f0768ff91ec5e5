package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/snowglobe/internal/app"
	"github.com/coreman2200/snowglobe/internal/config"
	"github.com/coreman2200/snowglobe/internal/driver/fake"
)

func main() {
	var (
		frames     int
		fps        int
		configPath string
		uniforms   bool
		dump       string
	)
	flag.IntVar(&frames, "frames", 600, "ticks to simulate")
	flag.IntVar(&fps, "fps", 60, "simulated frames per second")
	flag.StringVar(&configPath, "config", "", "optional config.yaml")
	flag.BoolVar(&uniforms, "uniforms", false, "print the flattened uniforms of the last frame")
	flag.StringVar(&dump, "dump", "", "write the last frame as JSON to this path")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config")
		}
		config.Merge(cfg, c)
	}
	cfg.Sink = "fake"
	if fps <= 0 {
		fps = 60
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	s, _ := core.Reg.Get("fake")
	drv := s.(*fake.Driver)
	drv.Quiet = true

	// fixed step, independent of wall time
	dt := time.Second / time.Duration(fps)
	now := time.Unix(0, 0)
	start := time.Now()
	for i := 0; i < frames; i++ {
		_ = core.Step(now)
		now = now.Add(dt)
	}
	wall := time.Since(start)

	st := core.Scene.Stats()
	fmt.Printf("frames=%d drawn=%d failed=%d t=%.3fs wall=%s\n", frames, drv.Count, core.Failures(), st.T, wall)
	fmt.Printf("slots=%d animated=%v lights=%d\n", st.Slots, core.Scene.AnimatedSlots(), st.Lights)

	last := drv.Last()
	if last == nil {
		os.Exit(1)
	}
	if uniforms {
		u := last.Uniforms()
		for _, name := range u.Names() {
			v, _ := u.Get(name)
			fmt.Printf("%s = %v\n", name, v)
		}
	}
	if dump != "" {
		b, err := json.MarshalIndent(last, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("marshal frame")
		}
		if err := os.WriteFile(dump, b, 0644); err != nil {
			log.Fatal().Err(err).Str("path", dump).Msg("write frame")
		}
	}
	_ = core.Close()
}
