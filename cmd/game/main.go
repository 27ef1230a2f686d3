package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Ricochet-Tanks/internal/config"
	"github.com/Garsondee/Ricochet-Tanks/internal/screen"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional TOML file overriding the default arena and rules")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Loading config failed", "error", err)
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warn("Unknown log level, keeping info", "level", cfg.Log.Level)
	}
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(true)
	log.Info("Config loaded", "path", configPath, "tps", cfg.Sim.TickRate, "enemies", len(cfg.Enemies.Spawn))

	app := screen.New(cfg)
	w, h := app.WindowSize()
	ebiten.SetWindowTitle(cfg.UI.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.Sim.TickRate)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal("Game exited with error", "error", err)
	}

	o := app.World().Outcome()
	log.Info("Session ended", "status", o.Status, "tick", o.Tick, "kills", o.Kills)
}
