package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/audio"
	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/logging"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/render"
	"github.com/lixenwraith/antcolony/render/renderer"
	"github.com/lixenwraith/antcolony/system"
)

var (
	seedFlag     = flag.Uint64("seed", 1, "Random seed")
	catalogFlag  = flag.String("catalog", "", "Directory of YAML stat files merged over the built-in catalog")
	colonyFlag   = flag.Int("colony", 16, "Number of defenders placed around the queen")
	wavesFlag    = flag.Bool("waves", true, "Spawn hostile waves")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal and print a summary")
	framesFlag   = flag.Int("frames", 3600, "Frames to simulate in headless mode")
	audioFlag    = flag.Bool("audio", true, "Play sound cues")
	logDirFlag   = flag.String("logdir", logging.DefaultDir, "Log directory, empty disables logging")
	logLevelFlag = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logger, err := logging.New(logging.Config{
		Dir:     *logDirFlag,
		File:    logging.DefaultFile,
		Level:   *logLevelFlag,
		MaxSize: logging.DefaultMaxSize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sim, tally, err := setup(logger)
	if err != nil {
		logger.Error("setup failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}

	if *headlessFlag {
		runHeadless(sim, tally, *framesFlag)
		return
	}

	if err := runViewer(sim, tally, logger); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
}

// setup builds the catalog, simulation, systems and starting colony
func setup(logger *zap.Logger) (*engine.Simulation, *tally, error) {
	catalog, err := content.DefaultCatalog(logger)
	if err != nil {
		return nil, nil, err
	}
	if *catalogFlag != "" {
		if err := catalog.LoadDir(*catalogFlag); err != nil {
			return nil, nil, err
		}
	}

	cfg := engine.DefaultConfig()
	cfg.Seed = *seedFlag
	sim, err := engine.NewSimulation(cfg,
		engine.WithLogger(logger),
		engine.WithCatalog(catalog),
		engine.WithReporter(reporter{logger}),
	)
	if err != nil {
		return nil, nil, err
	}
	system.Register(sim, system.Options{Waves: *wavesFlag})

	if _, err := system.PlaceColony(sim, *colonyFlag); err != nil {
		return nil, nil, err
	}

	t := &tally{}
	sim.Subscribe(t, event.EventUnitKilled, event.EventColonyLost, event.EventBossDefeated, event.EventWaveStarted)
	return sim, t, nil
}

// reporter surfaces isolated unit failures in the log
type reporter struct {
	logger *zap.Logger
}

func (r reporter) Report(w engine.Warning) {
	r.logger.Warn("unit isolated",
		zap.Uint64("frame", w.Frame),
		zap.String("system", w.System),
		zap.Uint64("entity", uint64(w.Entity)),
		zap.Error(w.Err))
}

// tally accumulates the run summary from notifications
type tally struct {
	reward       int
	hostileKills int
	colonyLosses int
	bosses       int
	waves        int
	lostAt       uint64
	lost         bool
}

func (t *tally) OnEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventUnitKilled:
		p, ok := ev.Payload.(*event.UnitKilledPayload)
		if !ok {
			return
		}
		if p.Faction == core.FactionHostile {
			t.hostileKills++
			t.reward += p.RewardValue
		} else {
			t.colonyLosses++
		}
	case event.EventBossDefeated:
		t.bosses++
	case event.EventWaveStarted:
		t.waves++
	case event.EventColonyLost:
		if !t.lost {
			t.lost = true
			t.lostAt = ev.Frame
		}
	}
}

func (t *tally) String() string {
	s := fmt.Sprintf("waves=%d kills=%d losses=%d bosses=%d reward=%d",
		t.waves, t.hostileKills, t.colonyLosses, t.bosses, t.reward)
	if t.lost {
		s += fmt.Sprintf(" colony lost at frame %d", t.lostAt)
	}
	return s
}

// runHeadless advances frames until the limit or the colony falls
func runHeadless(sim *engine.Simulation, t *tally, frames int) {
	start := time.Now()
	ran := 0
	for ran < frames && !t.lost {
		sim.Tick()
		ran++
	}
	sim.World().Logger.Info("headless run complete",
		zap.Int("frames", ran),
		zap.Int("reward", t.reward),
		zap.Int("kills", t.hostileKills),
		zap.Duration("elapsed", time.Since(start)))
	fmt.Printf("run %s: %d frames, %s\n", sim.World().RunID, ran, t)
}

// runViewer drives the simulation at the nominal frame rate and renders each frame
func runViewer(sim *engine.Simulation, t *tally, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	core.SetCrashCleanup(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
		screen.Fini()
		fmt.Printf("run %s: %s\n", sim.World().RunID, t)
	}()

	var ae *audio.AudioEngine
	if *audioFlag {
		ae = audio.NewAudioEngine(audio.LoadAudioConfig(), logger)
		if err := ae.Start(); err != nil {
			logger.Warn("audio start failed", zap.Error(err))
		}
		defer ae.Stop()
		notifier := audio.NewNotifier(ae)
		sim.Subscribe(notifier, notifier.EventTypes()...)
	}

	orchestrator := render.NewRenderOrchestrator(screen)
	var muted func() bool
	if ae != nil {
		muted = ae.IsMuted
	}
	orchestrator.Register(renderer.NewExplosionRenderer(), render.PriorityMarker)
	orchestrator.Register(renderer.NewUnitRenderer(), render.PriorityEntities)
	orchestrator.Register(renderer.NewProjectileRenderer(), render.PriorityProjectile)
	orchestrator.Register(renderer.NewHealthBarRenderer(), render.PriorityHealthBar)
	orchestrator.Register(renderer.NewStatusBarRenderer(muted), render.PriorityUI)

	eventChan := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	ticker := time.NewTicker(parameter.FrameDuration)
	defer ticker.Stop()

	paused := false
	step := false
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				orchestrator.Resize()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ':
					paused = !paused
					orchestrator.SetPaused(paused)
				case ev.Rune() == '.':
					step = paused
				case ev.Rune() == 'm' && ae != nil:
					ae.ToggleMute()
				}
			}

		case <-ticker.C:
			if !paused || step {
				sim.Tick()
				step = false
			}
			snap := sim.Snapshot()
			orchestrator.RenderFrame(&snap)
		}
	}
}
