package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/hauntedpumpkin/boss"
	"github.com/milk9111/hauntedpumpkin/config"
	"github.com/milk9111/hauntedpumpkin/prefabs"
	"github.com/milk9111/hauntedpumpkin/session"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and boss spec hot reload")
	bossType := flag.String("boss", "", "boss type spawned on boss rounds (default from prefabs/bosses.yaml)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.Logger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.DiskDir = cfg.PrefabsDir

	st, closeStore, err := session.OpenStore(cfg.StorePath, cfg.StoreCapacity)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("path", cfg.StorePath), zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	sess := session.New(session.Options{
		Store:     st,
		Logger:    logger,
		Rand:      cfg.Rand(),
		Boss:      boss.Type(*bossType),
		HotReload: *debug,
	})
	defer sess.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("Haunted Pumpkin")

	game := NewGame(sess, *debug, logger)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
