package game

import "fmt"

const enemyBarrelLength = 20

// RandomSource is the randomness the enemy AI draws from. *rand.Rand
// satisfies it; tests inject a scripted source.
type RandomSource interface {
	Intn(n int) int
}

// DefaultEnemySpawns are the enemy start positions on the default map.
var DefaultEnemySpawns = []Vec{{250, 250}, {250, 100}}

// Enemy wanders in a cardinal direction and picks a new one whenever it
// touches the arena edge or an obstacle.
type Enemy struct {
	ID       int
	Label    string
	Body     Rect
	Dir      Vec
	Barrel   Vec // facing indicator offset from the body centre
	HasFired bool
}

// NewEnemy spawns an enemy heading down with its top-left corner at pos.
func NewEnemy(id int, pos Vec) *Enemy {
	return &Enemy{
		ID:     id,
		Label:  fmt.Sprintf("E%d", id),
		Body:   Rect{X: pos.X, Y: pos.Y, W: tankSize, H: tankSize},
		Dir:    DirDown,
		Barrel: DirDown.Scale(enemyBarrelLength),
	}
}

// Center returns the centre of the enemy body.
func (e *Enemy) Center() Vec { return e.Body.Center() }

// BarrelSegment returns the facing indicator in world space.
func (e *Enemy) BarrelSegment() Segment {
	c := e.Center()
	return Segment{Start: c, End: c.Add(e.Barrel)}
}

// Blocked reports whether the enemy sits on or past an arena edge or
// overlaps an obstacle.
func (e *Enemy) Blocked(arena Arena, obstacles []Rect) bool {
	b := e.Body
	if b.X <= 0 || b.X >= arena.W-b.W || b.Y <= 0 || b.Y >= arena.H-b.H {
		return true
	}
	return b.CollideIndex(obstacles) >= 0
}

// Step runs one AI tick. When blocked, the enemy undoes its last step,
// draws a new heading uniformly from the four cardinals (its current
// heading included) and then moves one unit along it. It reports whether a
// redirect happened.
func (e *Enemy) Step(arena Arena, obstacles []Rect, rng RandomSource) bool {
	redirected := false
	if e.Blocked(arena, obstacles) {
		e.Body = e.Body.Moved(e.Dir.Neg())
		e.Dir = cardinals[rng.Intn(len(cardinals))]
		e.Barrel = e.Dir.Scale(enemyBarrelLength)
		redirected = true
	}
	e.Body = e.Body.Moved(e.Dir)
	return redirected
}

// Fire launches a shot along the current heading from the body centre,
// offset so the shot is centred on it. Enemy shots die on first contact.
func (e *Enemy) Fire() *Projectile {
	half := float64(projectileSize) / 2
	origin := e.Center().Sub(Vec{half, half})
	p := newProjectile(origin, e.Dir.Scale(enemyShotSpeed), 0)
	p.Owner = e.Label
	return p
}
