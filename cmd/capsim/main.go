package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/capsim"
	"github.com/oomph-ac/capsim/scene"
	"github.com/oomph-ac/capsim/settings"
	"github.com/oomph-ac/capsim/worker"
)

var (
	settingsPath string
	scenePath    string
	frames       int
	tickRate     int
	workers      int
	sentryDSN    string
)

func init() {
	flag.StringVar(&settingsPath, "settings", "capsim.toml", "settings file, created with the defaults if missing")
	flag.StringVar(&scenePath, "scene", "scene.yaml", "scene file to simulate")
	flag.IntVar(&frames, "frames", 600, "number of frames to run")
	flag.IntVar(&tickRate, "tps", 60, "frames per simulated second")
	flag.IntVar(&workers, "workers", 0, "worker goroutines, one per CPU if not positive")
	flag.StringVar(&sentryDSN, "sentry", os.Getenv("SENTRY_DSN"), "sentry DSN for panic reports")
}

func main() {
	flag.Parse()

	s, err := settings.Load(settingsPath)
	if err != nil {
		slog.Error("unable to load settings", "err", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.Level()}))

	if sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
			log.Warn("sentry disabled", "err", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	sc, err := scene.Load(scenePath)
	if err != nil {
		log.Error("unable to load scene", "err", err)
		os.Exit(1)
	}

	pool := worker.NewPool(workers)
	defer pool.Close()

	w := capsim.New(s, log, pool)
	if err := w.LoadScene(sc); err != nil {
		log.Error("unable to apply scene", "err", err)
		os.Exit(1)
	}

	dt := 1 / float32(max(tickRate, 1))
	start := time.Now()
	for i := 0; i < frames; i++ {
		w.Step(dt)
	}
	log.Info("simulation done", "frames", w.Frames(), "took", time.Since(start))

	for _, a := range w.Actors() {
		st := a.State
		log.Info("actor",
			"id", a.ID,
			"pos", st.Center,
			"vel", st.ClipVel,
			"grounded", st.Grounded(),
			"blocked", st.Blocked,
			"outcome", st.Outcome.String(),
		)
	}
}
