// Package screen is the Ebitengine front end: it samples input, steps the
// world once per tick, and draws the arena, HUD, and event feed.
package screen

import (
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Ricochet-Tanks/internal/config"
	"github.com/Garsondee/Ricochet-Tanks/internal/game"
)

// App implements ebiten.Game for one play session. A session holds a
// sequence of rounds; R starts a fresh one after the current round ends.
type App struct {
	cfg   *config.Config
	rules game.Rules

	world   *game.World
	feed    *EventFeed
	pointer game.Vec
	paused  bool
	round   int
	logged  bool

	width, height int

	// writeClipboard is clipboard.WriteAll outside tests.
	writeClipboard func(string) error
}

// New builds an App and starts the first round.
func New(cfg *config.Config) *App {
	a := &App{
		cfg:            cfg,
		rules:          cfg.Rules(),
		feed:           NewEventFeed(),
		width:          int(cfg.Arena.Width) + feedPanelWidth,
		height:         int(cfg.Arena.Height),
		writeClipboard: clipboard.WriteAll,
	}
	a.pointer = a.rules.PlayerStart
	a.startRound()
	return a
}

// WindowSize returns the window size in device-independent pixels.
func (a *App) WindowSize() (int, int) {
	return int(float64(a.width) * a.cfg.UI.Scale), int(float64(a.height) * a.cfg.UI.Scale)
}

// World returns the round in progress.
func (a *App) World() *game.World { return a.world }

func (a *App) startRound() {
	seed := a.cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	a.world = game.NewWorld(a.rules, rng, game.NewSimLog(false))
	a.round++
	a.logged = false
	a.paused = false
	log.Info("Round started",
		"round", a.round,
		"id", a.world.RoundID,
		"seed", seed,
		"enemies", len(a.world.Enemies),
	)
}

// Update runs one tick. It returns ebiten.Termination once the player quits.
func (a *App) Update() error {
	return a.update(sampleKeys())
}

func (a *App) update(k keyState) error {
	a.pointer = game.Vec{X: float64(k.cursorX), Y: float64(k.cursorY)}

	if k.copyReport {
		a.copyReport()
	}

	status := a.world.Status()
	switch {
	case status == game.StatusQuit:
		return ebiten.Termination
	case status.Over():
		if k.quit {
			return ebiten.Termination
		}
		if k.restart {
			a.startRound()
		}
		return nil
	}

	if k.pause {
		a.paused = !a.paused
	}
	if a.paused && !k.quit {
		return nil
	}

	status = a.world.Step(k.toInput())
	a.feed.Sync(a.world.SimLog)
	if status.Over() {
		a.logOutcome()
	}
	if status == game.StatusQuit {
		return ebiten.Termination
	}
	return nil
}

func (a *App) logOutcome() {
	if a.logged {
		return
	}
	a.logged = true
	o := a.world.Outcome()
	log.Info("Round over",
		"round", a.round,
		"id", o.RoundID,
		"status", o.Status,
		"tick", o.Tick,
		"kills", o.Kills,
		"shots", o.ShotsFired,
		"bounces", o.Bounces,
	)
}

// Report is the text copied to the clipboard: the round summary followed by
// the full event log.
func (a *App) Report() string {
	return a.world.SimLog.Summary(a.world) + "\n" + a.world.SimLog.Format()
}

func (a *App) copyReport() {
	if err := a.writeClipboard(a.Report()); err != nil {
		log.Warn("Copy report to clipboard failed", "error", err)
		return
	}
	log.Info("Report copied to clipboard", "round", a.round, "entries", len(a.world.SimLog.Entries()))
}

// Draw renders the arena, HUD, and event feed.
func (a *App) Draw(screen *ebiten.Image) {
	drawArena(screen, a.world, a.pointer)
	drawHUD(screen, a.world, a.paused)
	a.feed.Draw(screen, int(a.world.Arena.W), a.height)
}

// Layout fixes the logical screen to the arena plus the feed panel; the
// window scale is applied by Ebitengine.
func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}
