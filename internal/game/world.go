package game

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// DefaultArena is the fixed playfield size.
var DefaultArena = Arena{W: 500, H: 500}

// DefaultObstacles returns the two walls of the default map.
func DefaultObstacles() []Rect {
	return []Rect{
		{X: 0, Y: 400, W: 400, H: 20},
		{X: 100, Y: 200, W: 400, H: 20},
	}
}

// Rules fixes the layout and limits of a round.
type Rules struct {
	Arena             Arena
	Obstacles         []Rect
	PlayerStart       Vec
	EnemySpawns       []Vec
	MaxPlayerShots    int
	PlayerShotBounces int

	// EndOnVictory ends the round once every enemy is destroyed. When false
	// the round keeps running with an empty arena until quit or defeat.
	EndOnVictory bool
}

// DefaultRules returns the standard single-arena layout.
func DefaultRules() Rules {
	return Rules{
		Arena:             DefaultArena,
		Obstacles:         DefaultObstacles(),
		PlayerStart:       DefaultPlayerStart,
		EnemySpawns:       append([]Vec(nil), DefaultEnemySpawns...),
		MaxPlayerShots:    MaxPlayerShots,
		PlayerShotBounces: PlayerShotBounces,
		EndOnVictory:      true,
	}
}

// Input is everything the player did during one frame.
type Input struct {
	Quit    bool
	Fire    int // fire presses (space or mouse down) this frame
	Move    MoveInput
	Pointer Vec
}

type worldStats struct {
	kills       int
	playerShots int
	enemyShots  int
	bounces     int
	killedBy    string
}

// World owns every entity of a round and advances them one tick at a time.
// It has no rendering dependency.
type World struct {
	RoundID     string
	Tick        int
	Arena       Arena
	Player      *Tank
	Enemies     []*Enemy
	PlayerShots []*Projectile
	EnemyShots  []*Projectile
	Obstacles   []Rect
	SimLog      *SimLog

	rules      Rules
	rng        RandomSource
	status     Status
	nextShotID int
	stats      worldStats
}

// NewWorld builds a round from rules. rng drives enemy redirects; log may
// be nil, in which case a non-verbose log is created.
func NewWorld(rules Rules, rng RandomSource, log *SimLog) *World {
	if log == nil {
		log = NewSimLog(false)
	}
	w := &World{
		RoundID:   ksuid.New().String(),
		Arena:     rules.Arena,
		Player:    NewTank(rules.PlayerStart),
		Obstacles: rules.Obstacles,
		SimLog:    log,
		rules:     rules,
		rng:       rng,
	}
	for i, pos := range rules.EnemySpawns {
		w.Enemies = append(w.Enemies, NewEnemy(i, pos))
	}
	return w
}

// Status returns the round status after the last tick.
func (w *World) Status() Status { return w.status }

// Rules returns the rules the world was built with.
func (w *World) Rules() Rules { return w.rules }

// Step advances the round by one tick in fixed order:
//  1. quit and fire input
//  2. enemy shots (defeat on player hit)
//  3. player shots (defeat on a ricochet into the player)
//  4. player movement
//  5. enemy AI, volley firing, and player-shot hits on enemies
//
// Once the round is over Step is a no-op and returns the final status.
func (w *World) Step(in Input) Status {
	if w.status.Over() {
		return w.status
	}
	w.Tick++

	// 1. INPUT
	if in.Quit {
		w.end(StatusQuit, "")
		return w.status
	}
	for i := 0; i < in.Fire; i++ {
		if len(w.PlayerShots) >= w.rules.MaxPlayerShots {
			break
		}
		w.firePlayerShot(in.Pointer)
	}

	// 2. ENEMY SHOTS
	var hit *Projectile
	w.EnemyShots, hit = w.advanceShots(w.EnemyShots, func(p *Projectile) bool {
		return p.Body.Intersects(w.Player.Body)
	})
	if hit != nil {
		w.end(StatusDefeat, hit.Owner)
		return w.status
	}

	// 3. PLAYER SHOTS
	w.PlayerShots, hit = w.advanceShots(w.PlayerShots, func(p *Projectile) bool {
		// A fresh shot starts inside the tank; only a ricochet counts.
		return p.Bounces > 0 && p.Body.Intersects(w.Player.Body)
	})
	if hit != nil {
		w.end(StatusDefeat, hit.Owner)
		return w.status
	}

	// 4. PLAYER MOVE
	w.Player.Move(in.Move, w.Arena, w.Obstacles)
	if in.Move.Any() {
		w.SimLog.AddVerbose(w.Tick, w.Player.Label, "player", "position",
			fmt.Sprintf("(%.0f,%.0f)", w.Player.Body.X, w.Player.Body.Y), 0)
	}

	// 5. ENEMIES
	w.updateEnemies()

	if len(w.Enemies) == 0 && w.stats.kills > 0 && w.rules.EndOnVictory {
		w.end(StatusVictory, "")
	}
	return w.status
}

func (w *World) firePlayerShot(pointer Vec) {
	p := w.Player.Fire(pointer, w.rules.PlayerShotBounces)
	w.nextShotID++
	p.ID = w.nextShotID
	w.PlayerShots = append(w.PlayerShots, p)
	w.stats.playerShots++
	w.SimLog.Add(w.Tick, p.Owner, "shot", "fired",
		fmt.Sprintf("#%d vel=(%.2f,%.2f)", p.ID, p.Vel.X, p.Vel.Y), float64(p.ID))
}

func (w *World) fireEnemyShot(e *Enemy) {
	p := e.Fire()
	w.nextShotID++
	p.ID = w.nextShotID
	w.EnemyShots = append(w.EnemyShots, p)
	w.stats.enemyShots++
	w.SimLog.Add(w.Tick, p.Owner, "shot", "fired",
		fmt.Sprintf("#%d vel=(%.2f,%.2f)", p.ID, p.Vel.X, p.Vel.Y), float64(p.ID))
}

// advanceShots moves every shot one tick and compacts the slice in place,
// dropping shots that deactivated. Removal happens after each shot is
// processed, so no element is skipped. The first shot for which hits
// returns true is reported.
func (w *World) advanceShots(shots []*Projectile, hits func(*Projectile) bool) ([]*Projectile, *Projectile) {
	var hit *Projectile
	kept := shots[:0]
	for _, p := range shots {
		if n := p.Advance(w.Arena, w.Obstacles); n > 0 {
			w.stats.bounces += n
			w.SimLog.Add(w.Tick, p.Owner, "shot", "bounce",
				fmt.Sprintf("#%d count=%d/%d", p.ID, p.Bounces, p.BounceLimit), float64(p.Bounces))
		}
		if hit == nil && hits(p) {
			hit = p
		}
		if !p.Active {
			w.SimLog.Add(w.Tick, p.Owner, "shot", "expired",
				fmt.Sprintf("#%d at (%.0f,%.0f)", p.ID, p.Body.X, p.Body.Y), float64(p.ID))
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(shots); i++ {
		shots[i] = nil
	}
	return kept, hit
}

func (w *World) updateEnemies() {
	destroyed := make(map[*Enemy]bool)
	reloaded := false
	for _, e := range w.Enemies {
		prevDir := e.Dir
		if e.Step(w.Arena, w.Obstacles, w.rng) {
			w.SimLog.Add(w.Tick, e.Label, "enemy", "redirect",
				fmt.Sprintf("(%.0f,%.0f) → (%.0f,%.0f)", prevDir.X, prevDir.Y, e.Dir.X, e.Dir.Y), 0)
		}
		w.SimLog.AddVerbose(w.Tick, e.Label, "enemy", "position",
			fmt.Sprintf("(%.0f,%.0f)", e.Body.X, e.Body.Y), 0)

		if !e.HasFired {
			w.fireEnemyShot(e)
			e.HasFired = true
		}
		if len(w.EnemyShots) == 0 && e.HasFired {
			e.HasFired = false
			reloaded = true
		}

		for j, p := range w.PlayerShots {
			if !e.Body.Intersects(p.Body) {
				continue
			}
			last := len(w.PlayerShots) - 1
			copy(w.PlayerShots[j:], w.PlayerShots[j+1:])
			w.PlayerShots[last] = nil
			w.PlayerShots = w.PlayerShots[:last]
			destroyed[e] = true
			w.stats.kills++
			w.SimLog.Add(w.Tick, e.Label, "enemy", "destroyed",
				fmt.Sprintf("by #%d from %s", p.ID, p.Owner), float64(p.ID))
			break
		}
	}
	if reloaded {
		w.SimLog.Add(w.Tick, "--", "enemy", "volley", "reloaded", 0)
	}

	if len(destroyed) == 0 {
		return
	}
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		if !destroyed[e] {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(w.Enemies); i++ {
		w.Enemies[i] = nil
	}
	w.Enemies = kept
}

func (w *World) end(status Status, killedBy string) {
	w.status = status
	w.stats.killedBy = killedBy
	o := w.Outcome()
	w.SimLog.Add(w.Tick, "--", "round", "end", fmt.Sprintf("%s: %s", status, o.Description), float64(status))
}
