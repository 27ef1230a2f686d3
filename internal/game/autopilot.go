package game

import "math"

// Autopilot tuning: cooldowns in ticks, range in arena units.
const (
	autopilotFireCooldown = 20
	autopilotWanderTicks  = 45
	autopilotDodgeRange   = 60.0
)

// Autopilot plays the player side headlessly: it aims at the nearest enemy
// with a short lead, fires when the lane is clear, sidesteps incoming enemy
// shots, and otherwise wanders.
type Autopilot struct {
	rng         RandomSource
	cooldown    int
	wander      MoveInput
	wanderTicks int
}

// NewAutopilot returns an autopilot that draws its wander legs from rng.
func NewAutopilot(rng RandomSource) *Autopilot {
	return &Autopilot{rng: rng}
}

// Next decides the input for the coming tick.
func (a *Autopilot) Next(w *World) Input {
	var in Input
	if a.cooldown > 0 {
		a.cooldown--
	}

	if target := nearestEnemy(w); target != nil {
		in.Pointer = leadTarget(w.Player.Center(), target)
		origin := w.Player.Center().Add(Vec{projectileSize / 2, projectileSize / 2})
		if a.cooldown == 0 && HasClearShot(origin, target.Center(), projectileSize, w.Obstacles) {
			in.Fire = 1
			a.cooldown = autopilotFireCooldown
		}
	}

	if dodge, ok := dodgeMove(w); ok {
		in.Move = dodge
		return in
	}

	if a.wanderTicks <= 0 {
		a.wander = randomMove(a.rng)
		a.wanderTicks = autopilotWanderTicks
	}
	a.wanderTicks--
	in.Move = a.wander
	return in
}

func nearestEnemy(w *World) *Enemy {
	var best *Enemy
	bestDist := math.Inf(1)
	c := w.Player.Center()
	for _, e := range w.Enemies {
		if d := c.Dist(e.Center()); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// leadTarget aims where the enemy will be when a shot covers the distance.
func leadTarget(from Vec, e *Enemy) Vec {
	flight := from.Dist(e.Center()) / projectileSpeed
	return e.Center().Add(e.Dir.Scale(flight))
}

// dodgeMove steps perpendicular to the closest enemy shot that is closing in.
func dodgeMove(w *World) (MoveInput, bool) {
	c := w.Player.Center()
	var threat *Projectile
	best := autopilotDodgeRange
	for _, p := range w.EnemyShots {
		to := c.Sub(p.Center())
		d := to.Len()
		if d >= best || to.Dot(p.Vel) <= 0 {
			continue
		}
		threat, best = p, d
	}
	if threat == nil {
		return MoveInput{}, false
	}
	var m MoveInput
	if threat.Vel.X != 0 {
		// Horizontal shot: leave its row.
		if threat.Center().Y < c.Y {
			m.Down = true
		} else {
			m.Up = true
		}
	} else {
		if threat.Center().X < c.X {
			m.Right = true
		} else {
			m.Left = true
		}
	}
	return m, true
}

func randomMove(rng RandomSource) MoveInput {
	// 0..8: idle, four cardinals, four diagonals.
	switch rng.Intn(9) {
	case 1:
		return MoveInput{Up: true}
	case 2:
		return MoveInput{Down: true}
	case 3:
		return MoveInput{Left: true}
	case 4:
		return MoveInput{Right: true}
	case 5:
		return MoveInput{Up: true, Left: true}
	case 6:
		return MoveInput{Up: true, Right: true}
	case 7:
		return MoveInput{Down: true, Left: true}
	case 8:
		return MoveInput{Down: true, Right: true}
	default:
		return MoveInput{}
	}
}
