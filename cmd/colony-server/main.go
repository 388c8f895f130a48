package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/content"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/logging"
	"github.com/lixenwraith/antcolony/network"
	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/system"
)

func main() {
	addr := flag.String("addr", ":7777", "Listen address")
	seed := flag.Uint64("seed", 1, "Random seed")
	catalogDir := flag.String("catalog", "", "Directory of YAML stat files merged over the built-in catalog")
	colony := flag.Int("colony", 16, "Number of defenders placed around the queen")
	every := flag.Int("every", 2, "Publish a snapshot every N frames")
	maxPeers := flag.Int("peers", 16, "Maximum concurrent viewers")
	logDir := flag.String("logdir", logging.DefaultDir, "Log directory, empty disables logging")
	logLevel := flag.String("loglevel", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger, err := logging.New(logging.Config{
		Dir:     *logDir,
		File:    "colony-server.log",
		Level:   *logLevel,
		MaxSize: logging.DefaultMaxSize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *addr, *seed, *catalogDir, *colony, *every, *maxPeers); err != nil {
		logger.Error("server failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "colony-server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, addr string, seed uint64, catalogDir string, colony, every, maxPeers int) error {
	catalog, err := content.DefaultCatalog(logger)
	if err != nil {
		return err
	}
	if catalogDir != "" {
		if err := catalog.LoadDir(catalogDir); err != nil {
			return err
		}
	}

	cfg := engine.DefaultConfig()
	cfg.Seed = seed
	sim, err := engine.NewSimulation(cfg, engine.WithLogger(logger), engine.WithCatalog(catalog))
	if err != nil {
		return err
	}
	system.Register(sim, system.Options{Waves: true})
	if _, err := system.PlaceColony(sim, colony); err != nil {
		return err
	}

	netCfg := network.DefaultConfig()
	netCfg.Address = addr
	netCfg.SnapshotEvery = every
	netCfg.MaxPeers = maxPeers

	svc := network.NewService(netCfg, sim.World())
	sim.Subscribe(svc,
		event.EventUnitKilled,
		event.EventExplosion,
		event.EventBossPhaseChanged,
		event.EventBossSpecialStarted,
		event.EventBossEscalated,
		event.EventBossDefeated,
		event.EventColonyLost,
		event.EventWaveStarted,
	)
	if err := svc.Start(); err != nil {
		return err
	}
	logger.Info("colony server listening",
		zap.String("addr", addr),
		zap.String("run", sim.World().RunID.String()))

	ticker := time.NewTicker(parameter.FrameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("shutting down", zap.Int("peers", svc.PeerCount()))
			return svc.Stop(shutdownCtx)
		case <-ticker.C:
			sim.Tick()
			snap := sim.Snapshot()
			if svc.ShouldPublish(snap.Frame) {
				svc.Publish(snap)
			}
		}
	}
}
