package game

import (
	"strings"
	"testing"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.World))
	t.Log(ts.Snapshot().String())
}

// --- Scenario: Duel ---

func TestScenario_EnemyShotDefeatsPlayer(t *testing.T) {
	t.Log("=== TestScenario_EnemyShotDefeatsPlayer ===")
	t.Log("--- Setup: one enemy directly above the player, no walls ---")

	ts := NewTestSim(
		WithNoObstacles(),
		WithEnemyAt(50, 420),
	)
	status := ts.RunTicks(60)
	dumpLog(t, ts)
	dumpSummary(t, ts)

	if status != StatusDefeat {
		t.Fatalf("status = %s, want defeat", status)
	}
	o := ts.World.Outcome()
	if o.KilledBy != "E0" {
		t.Errorf("killed by %q, want E0", o.KilledBy)
	}
	// Shot leaves y=428 at 2/tick and first overlaps the tank at y=446.
	if o.Tick != 10 {
		t.Errorf("defeat at tick %d, want 10", o.Tick)
	}
	if !ts.SimLog.HasEntry("round", "end", "defeat") {
		t.Error("missing round/end entry")
	}
}

// --- Scenario: Player clears the arena ---

func TestScenario_PlayerShotWinsRound(t *testing.T) {
	t.Log("=== TestScenario_PlayerShotWinsRound ===")
	t.Log("--- Setup: one enemy on the player's row, no walls ---")

	ts := NewTestSim(
		WithNoObstacles(),
		WithEnemyAt(150, 450),
	)
	ts.Step(Input{Fire: 1, Pointer: Vec{300, 460}})
	status := ts.RunTicks(60)
	dumpLog(t, ts)
	dumpSummary(t, ts)

	if status != StatusVictory {
		t.Fatalf("status = %s, want victory", status)
	}
	o := ts.World.Outcome()
	if o.Kills != 1 || o.EnemiesLeft != 0 || o.Tick != 11 {
		t.Errorf("outcome = %+v, want 1 kill at tick 11", o)
	}
	if len(ts.World.PlayerShots) != 0 {
		t.Errorf("the shot that hit should be consumed, %d left", len(ts.World.PlayerShots))
	}
	if e, ok := ts.SimLog.LastOf("enemy", "destroyed"); !ok || e.Actor != "E0" {
		t.Errorf("expected E0 destroyed entry, got %+v", e)
	}
}

func TestScenario_SandboxKeepsRunningAfterClear(t *testing.T) {
	ts := NewTestSim(
		WithNoObstacles(),
		WithEndOnVictory(false),
		WithEnemyAt(150, 450),
	)
	ts.Step(Input{Fire: 1, Pointer: Vec{300, 460}})
	status := ts.RunTicks(60)

	if status != StatusRunning {
		t.Fatalf("status = %s, want running", status)
	}
	if len(ts.World.Enemies) != 0 || ts.World.Outcome().Kills != 1 {
		t.Fatalf("expected the enemy destroyed, snapshot:\n%s", ts.Snapshot())
	}
	if ts.CurrentTick() != 61 {
		t.Errorf("tick = %d, want 61", ts.CurrentTick())
	}
}

func TestScenario_EmptyArenaIsNotVictory(t *testing.T) {
	ts := NewTestSim(WithNoEnemies())
	if status := ts.RunTicks(30); status != StatusRunning {
		t.Fatalf("status = %s, want running with nothing destroyed", status)
	}
}

// --- Scenario: Ricochet into own tank ---

func TestScenario_RicochetHitsPlayer(t *testing.T) {
	t.Log("=== TestScenario_RicochetHitsPlayer ===")
	t.Log("--- Setup: player fires straight down into the bottom edge ---")

	ts := NewTestSim(
		WithNoObstacles(),
		WithNoEnemies(),
	)
	ts.Step(Input{Fire: 1, Pointer: Vec{60, 500}})
	status := ts.RunTicks(30)
	dumpLog(t, ts)

	if status != StatusDefeat {
		t.Fatalf("status = %s, want defeat", status)
	}
	o := ts.World.Outcome()
	if o.KilledBy != "P" || o.Tick != 7 {
		t.Errorf("outcome = %+v, want own shot at tick 7", o)
	}
	if ts.SimLog.CountCategory("shot", "bounce") != 1 {
		t.Errorf("expected exactly one bounce before the hit")
	}
}

func TestScenario_FreshShotDoesNotHitShooter(t *testing.T) {
	ts := NewTestSim(WithNoObstacles(), WithNoEnemies())
	ts.Step(Input{Fire: 3, Pointer: Vec{300, 100}})
	if ts.World.Status() != StatusRunning {
		t.Fatalf("status = %s after firing, want running", ts.World.Status())
	}
	if len(ts.World.PlayerShots) != 3 {
		t.Fatalf("shots = %d, want 3", len(ts.World.PlayerShots))
	}
}

// --- Scenario: Shot cap ---

func TestScenario_PlayerShotCap(t *testing.T) {
	ts := NewTestSim(WithNoEnemies())
	ts.Step(Input{Fire: 5, Pointer: Vec{300, 300}})
	if got := len(ts.World.PlayerShots); got != MaxPlayerShots {
		t.Fatalf("shots in flight = %d, want %d", got, MaxPlayerShots)
	}
	ts.Step(Input{Fire: 1, Pointer: Vec{300, 300}})
	if got := ts.SimLog.CountCategory("shot", "fired"); got != MaxPlayerShots {
		t.Fatalf("fired = %d, want %d while the cap is reached", got, MaxPlayerShots)
	}

	// Once the volley dies the player can fire again.
	tick := ts.RunUntil(func(ts *TestSim) bool { return len(ts.World.PlayerShots) == 0 }, 500)
	if tick < 0 {
		t.Fatal("player shots never expired")
	}
	ts.Step(Input{Fire: 1, Pointer: Vec{300, 300}})
	if got := len(ts.World.PlayerShots); got != 1 {
		t.Errorf("shots in flight = %d, want 1 after reload", got)
	}
}

// --- Scenario: Enemy volleys ---

func TestScenario_EnemyVolleyReload(t *testing.T) {
	t.Log("=== TestScenario_EnemyVolleyReload ===")
	t.Log("--- Setup: one enemy mid-arena firing down, player off its line ---")

	ts := NewTestSim(
		WithNoObstacles(),
		WithEnemyAt(250, 250),
	)
	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.SimLog.CountCategory("enemy", "volley") > 0
	}, 400)
	if tick < 0 {
		t.Fatal("enemy never reloaded")
	}
	if ts.World.Enemies[0].HasFired {
		t.Fatal("reloaded enemy should be ready to fire")
	}
	if len(ts.World.EnemyShots) != 0 {
		t.Fatalf("reload requires an empty enemy shot list, got %d", len(ts.World.EnemyShots))
	}
	if got := ts.SimLog.CountCategory("shot", "fired"); got != 1 {
		t.Fatalf("only one shot per volley, got %d", got)
	}

	ts.RunTicks(1)
	fired := ts.SimLog.Filter("shot", "fired")
	if len(fired) != 2 || fired[1].Tick != tick+1 {
		t.Fatalf("expected second volley at tick %d, got %v", tick+1, fired)
	}
}

func TestScenario_EnemiesFireInLockstep(t *testing.T) {
	ts := NewTestSim(WithNoObstacles())
	ts.RunTicks(1)
	fired := ts.SimLog.Filter("shot", "fired")
	if len(fired) != 2 {
		t.Fatalf("each enemy should fire on tick 1, got %d shots", len(fired))
	}
	ts.RunTicks(20)
	if got := ts.SimLog.CountCategory("shot", "fired"); got != 2 {
		t.Errorf("no enemy may fire again while a shot is in flight, got %d", got)
	}
}

// --- Scenario: Kill removes only the target ---

func TestScenario_KillLeavesOtherEnemies(t *testing.T) {
	ts := NewTestSim(
		WithNoObstacles(),
		WithEnemyAt(150, 450),
		WithEnemyAt(400, 50),
	)
	ts.Step(Input{Fire: 1, Pointer: Vec{300, 460}})
	ts.RunUntil(func(ts *TestSim) bool { return ts.World.Outcome().Kills > 0 }, 60)
	dumpSummary(t, ts)

	if len(ts.World.Enemies) != 1 || ts.World.Enemies[0].Label != "E1" {
		t.Fatalf("expected only E1 left:\n%s", ts.Snapshot())
	}
	if ts.World.Status() != StatusRunning {
		t.Errorf("status = %s, want running with an enemy left", ts.World.Status())
	}
}

// --- Scenario: Compaction ---

func TestScenario_AdjacentExpiriesAreAllRemoved(t *testing.T) {
	ts := NewTestSim(WithNoObstacles(), WithNoEnemies())
	w := ts.World
	w.PlayerShots = []*Projectile{
		newProjectile(Vec{0, 10}, Vec{-3, 0}, 0),
		newProjectile(Vec{0, 30}, Vec{-3, 0}, 0),
		newProjectile(Vec{200, 200}, Vec{3, 0}, 0),
		newProjectile(Vec{0, 50}, Vec{-3, 0}, 0),
	}
	ts.Step(Input{})

	if len(w.PlayerShots) != 1 {
		t.Fatalf("shots left = %d, want 1", len(w.PlayerShots))
	}
	if w.PlayerShots[0].Body.Pos() != (Vec{203, 200}) {
		t.Errorf("survivor at %v, want (203,200)", w.PlayerShots[0].Body.Pos())
	}
	if got := ts.SimLog.CountCategory("shot", "expired"); got != 3 {
		t.Errorf("expired = %d, want 3", got)
	}
}

func TestScenario_KillClearsVacatedShotSlot(t *testing.T) {
	ts := NewTestSim(
		WithNoObstacles(),
		WithPlayerAt(10, 450),
		WithEnemyAt(250, 250),
		WithRandomSource(&scriptedRand{picks: []int{0}}),
	)
	w := ts.World
	// The stationary shot sits where E0 lands after its first step; the
	// second flies clear.
	w.PlayerShots = []*Projectile{
		newProjectile(Vec{255, 255}, Vec{}, 1),
		newProjectile(Vec{200, 100}, Vec{3, 0}, 1),
	}
	backing := w.PlayerShots[:2]
	ts.Step(Input{})
	dumpLog(t, ts)

	if len(w.PlayerShots) != 1 || w.PlayerShots[0].Body.Pos() != (Vec{203, 100}) {
		t.Fatalf("expected only the flying shot left:\n%s", ts.Snapshot())
	}
	if backing[1] != nil {
		t.Errorf("vacated slot still holds shot #%d", backing[1].ID)
	}
}

func TestScenario_EdgeAndWallBounceExpiresShot(t *testing.T) {
	ts := NewTestSim(
		WithArenaSize(200, 200),
		WithNoObstacles(),
		WithObstacle(0, 150, 100, 20),
		WithNoEnemies(),
		WithPlayerAt(150, 20),
	)
	w := ts.World
	w.PlayerShots = []*Projectile{newProjectile(Vec{1, 152}, Vec{-3, 1}, 1)}
	ts.Step(Input{})
	dumpLog(t, ts)

	if len(w.PlayerShots) != 0 {
		t.Fatalf("shot should expire after two bounces in one tick:\n%s", ts.Snapshot())
	}
	e, ok := ts.SimLog.LastOf("shot", "bounce")
	if !ok || e.NumVal != 2 {
		t.Errorf("bounce entry = %+v,%v, want count 2", e, ok)
	}
	if got := ts.SimLog.CountCategory("shot", "expired"); got != 1 {
		t.Errorf("expired = %d, want 1", got)
	}
	if w.Outcome().Bounces != 2 {
		t.Errorf("round bounces = %d, want 2", w.Outcome().Bounces)
	}
}

// --- Scenario: Quit ---

func TestScenario_QuitEndsRound(t *testing.T) {
	ts := NewTestSim()
	ts.RunTicks(5)
	if status := ts.Step(Input{Quit: true, Fire: 1}); status != StatusQuit {
		t.Fatalf("status = %s, want quit", status)
	}
	if len(ts.World.PlayerShots) != 0 {
		t.Error("quit must take effect before firing")
	}
	tick := ts.CurrentTick()
	ts.Step(Input{Move: MoveInput{Up: true}})
	if ts.CurrentTick() != tick {
		t.Error("a finished round must not advance")
	}
}

// --- Scenario: Long autopilot runs hold every invariant ---

func TestScenario_AutopilotInvariants(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		ts := NewTestSim(WithSeed(seed), WithVerbose(true))
		pilot := NewAutopilot(ts.rng)
		ts.Input = func(ts *TestSim) Input { return pilot.Next(ts.World) }

		ts.RunUntil(func(ts *TestSim) bool {
			checkWorldInvariants(t, ts.World)
			return false
		}, 3000)
		if t.Failed() {
			dumpSummary(t, ts)
			t.Log(ts.SimLog.FormatRange(ts.CurrentTick()-20, ts.CurrentTick()))
			return
		}
		t.Logf("seed %d: %s", seed, ts.World.Outcome().Description)
	}
}

func checkWorldInvariants(t *testing.T, w *World) {
	t.Helper()
	p := w.Player.Body
	if !w.Arena.InBounds(p) || p.CollideIndex(w.Obstacles) >= 0 {
		t.Errorf("T=%d player at %+v is out of bounds or inside a wall", w.Tick, p)
	}
	if len(w.PlayerShots) > w.Rules().MaxPlayerShots {
		t.Errorf("T=%d %d player shots in flight", w.Tick, len(w.PlayerShots))
	}
	for _, s := range append(append([]*Projectile(nil), w.PlayerShots...), w.EnemyShots...) {
		if !s.Active || s.Bounces > s.BounceLimit {
			t.Errorf("T=%d inactive shot #%d left in flight", w.Tick, s.ID)
		}
	}
	for _, e := range w.Enemies {
		if !IsCardinal(e.Dir) || !w.Arena.InBounds(e.Body) {
			t.Errorf("T=%d enemy %s has heading %v at %+v", w.Tick, e.Label, e.Dir, e.Body)
		}
	}
}

func TestSimLog_SummaryMentionsEveryEnemy(t *testing.T) {
	ts := NewTestSim()
	ts.RunTicks(3)
	s := ts.SimLog.Summary(ts.World)
	for _, want := range []string{"Status: running", "Enemy E0", "Enemy E1", "shots in flight: 0/3"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}
