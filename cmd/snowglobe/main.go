package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/coreman2200/snowglobe/internal/app"
	"github.com/coreman2200/snowglobe/internal/config"
)

func main() {
	// ---- Flags (config.yaml overrides where set) ----
	var (
		fps        = flag.Int("fps", 60, "target frames per second")
		timeScale  = flag.Float64("time-scale", 1, "scene seconds per wall second")
		sink       = flag.String("sink", "ws", "frame sink: ws | fake")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		writeCfg   = flag.Bool("write-config", false, "write the effective config to -config and exit")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Effective config: defaults, then flags, then config.yaml ----
	cfg := config.Default()
	cfg.FPS = *fps
	cfg.TimeScale = *timeScale
	cfg.Sink = *sink
	cfg.Addr = *addr
	if c, err := config.Load(*configPath); err != nil {
		if !*writeCfg {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
	} else {
		config.Merge(cfg, c)
	}

	if *writeCfg {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Msg("write config")
		}
		log.Info().Str("path", *configPath).Msg("config written")
		return
	}

	core, err := app.InitCore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", core.Hub.HandleFramesWS)
	mux.HandleFunc("/diag", core.Hub.HandleDiagWS)
	mux.HandleFunc("/control", core.Hub.HandleControlWS)
	mux.HandleFunc("/health", core.Hub.HandleHealth)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return core.Run(ctx) })
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("sink", core.Sink).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
	if err := core.Close(); err != nil {
		log.Warn().Err(err).Msg("close sink")
	}
	log.Info().Int("failed_ticks", core.Failures()).Msg("bye")
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
