package game

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless round harness used by tests and the headless
// report. It drives a World with scripted input and deterministic seeding.
type TestSim struct {
	Rules  Rules
	World  *World
	SimLog *SimLog
	rng    RandomSource

	// Input produces the player's input for the coming tick. Nil means idle.
	Input func(ts *TestSim) Input

	customEnemies bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // arena, obstacles, seed, verbose, rules
	simOptEntity                      // player and enemy placement
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithArenaSize sets the playfield dimensions.
func WithArenaSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Rules.Arena = Arena{W: w, H: h}
	}}
}

// WithNoObstacles clears the default walls.
func WithNoObstacles() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Rules.Obstacles = nil
	}}
}

// WithObstacle adds a wall. Walls added this way are kept alongside the
// defaults unless WithNoObstacles comes first.
func WithObstacle(x, y, w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Rules.Obstacles = append(ts.Rules.Obstacles, Rect{X: x, Y: y, W: w, H: h})
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithRandomSource injects the source the enemy AI draws headings from.
func WithRandomSource(rng RandomSource) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rng
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithEndOnVictory toggles whether clearing the arena ends the round.
func WithEndOnVictory(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Rules.EndOnVictory = v
	}}
}

// WithRules replaces the rules wholesale. Later options still apply on top.
func WithRules(r Rules) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Rules = r
	}}
}

// WithPlayerAt places the player tank's top-left corner.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Rules.PlayerStart = Vec{x, y}
	}}
}

// WithEnemyAt adds an enemy. The first call replaces the default spawns.
func WithEnemyAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		if !ts.customEnemies {
			ts.Rules.EnemySpawns = nil
			ts.customEnemies = true
		}
		ts.Rules.EnemySpawns = append(ts.Rules.EnemySpawns, Vec{x, y})
	}}
}

// WithNoEnemies starts the round with an empty enemy list.
func WithNoEnemies() SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Rules.EnemySpawns = nil
		ts.customEnemies = true
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered
// passes (infrastructure, then entities) and builds the world.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Rules:  DefaultRules(),
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	ts.World = NewWorld(ts.Rules, ts.rng, ts.SimLog)
	return ts
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.Tick
}

// Step advances one tick with the given input, ignoring the Input hook.
func (ts *TestSim) Step(in Input) Status {
	return ts.World.Step(in)
}

func (ts *TestSim) nextInput() Input {
	if ts.Input == nil {
		return Input{}
	}
	return ts.Input(ts)
}

// RunTicks advances the simulation n ticks, stopping early if the round
// ends. It returns the status after the last tick run.
func (ts *TestSim) RunTicks(n int) Status {
	for i := 0; i < n; i++ {
		if ts.World.Step(ts.nextInput()).Over() {
			break
		}
	}
	return ts.World.Status()
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Step(ts.nextInput())
		if predicate(ts) {
			return ts.World.Tick
		}
		if ts.World.Status().Over() {
			break
		}
	}
	return -1
}

// SimSnapshot is a lightweight copy of the round state at a tick.
type SimSnapshot struct {
	Tick        int
	Status      Status
	Player      Rect
	Enemies     []EnemySnapshot
	PlayerShots int
	EnemyShots  int
}

// EnemySnapshot is a lightweight copy of an enemy's state at a tick.
type EnemySnapshot struct {
	Label    string
	Body     Rect
	Dir      Vec
	HasFired bool
}

// Snapshot returns the current state of the round.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.World
	snap := SimSnapshot{
		Tick:        w.Tick,
		Status:      w.Status(),
		Player:      w.Player.Body,
		PlayerShots: len(w.PlayerShots),
		EnemyShots:  len(w.EnemyShots),
	}
	for _, e := range w.Enemies {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			Label:    e.Label,
			Body:     e.Body,
			Dir:      e.Dir,
			HasFired: e.HasFired,
		})
	}
	return snap
}

// String renders the snapshot on one line per entity.
func (s SimSnapshot) String() string {
	out := fmt.Sprintf("T=%03d %s player=(%.0f,%.0f) shots=%d/%d\n",
		s.Tick, s.Status, s.Player.X, s.Player.Y, s.PlayerShots, s.EnemyShots)
	for _, e := range s.Enemies {
		out += fmt.Sprintf("  %s (%.0f,%.0f) dir=(%.0f,%.0f) fired=%v\n",
			e.Label, e.Body.X, e.Body.Y, e.Dir.X, e.Dir.Y, e.HasFired)
	}
	return out
}
