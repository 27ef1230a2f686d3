package game

import "math"

const (
	projectileSize  = 6
	projectileSpeed = 8.0

	// PlayerShotBounces is how many bounces a player shot survives.
	PlayerShotBounces = 1
	// enemyShotSpeed multiplies the enemy's unit heading.
	enemyShotSpeed = 2.0
)

var (
	normalLeft  = Vec{-1, 0}
	normalRight = Vec{1, 0}
	normalUp    = Vec{0, -1}
	normalDown  = Vec{0, 1}
)

// Projectile is a bouncing shot. It deactivates once Bounces exceeds
// BounceLimit; the owning collection drops it on the same tick.
type Projectile struct {
	ID          int
	Owner       string // label of the tank that fired it
	Body        Rect
	Vel         Vec
	Bounces     int
	BounceLimit int
	Active      bool
}

// FireProjectile launches a shot from origin (top-left of the body) along
// angle at the standard projectile speed.
func FireProjectile(origin Vec, angle float64, bounceLimit int) *Projectile {
	return newProjectile(origin, FromAngle(angle, projectileSpeed), bounceLimit)
}

func newProjectile(origin, vel Vec, bounceLimit int) *Projectile {
	return &Projectile{
		Body:        Rect{X: origin.X, Y: origin.Y, W: projectileSize, H: projectileSize},
		Vel:         vel,
		BounceLimit: bounceLimit,
		Active:      true,
	}
}

// Center returns the centre of the projectile body.
func (p *Projectile) Center() Vec { return p.Body.Center() }

// Radius is the draw radius of the projectile.
func (p *Projectile) Radius() float64 { return p.Body.W / 2 }

// Advance runs one tick: arena-edge reflections, then the first colliding
// obstacle's reflection, then deactivation, then displacement. Reflection
// happens before displacement so a bounce redirects the shot within the same
// tick. It returns the number of bounces registered this tick.
func (p *Projectile) Advance(arena Arena, obstacles []Rect) int {
	before := p.Bounces

	// Edge checks use the position the shot would reach this tick, so a bounce
	// always fires before the body leaves the arena.
	next := p.Body.Moved(p.Vel)
	if next.X < 0 && p.Vel.X < 0 {
		p.bounce(normalRight)
	}
	if next.Right() > arena.W && p.Vel.X > 0 {
		p.bounce(normalLeft)
	}
	if next.Y < 0 && p.Vel.Y < 0 {
		p.bounce(normalDown)
	}
	if next.Bottom() > arena.H && p.Vel.Y > 0 {
		p.bounce(normalUp)
	}

	if i := p.Body.CollideIndex(obstacles); i >= 0 {
		p.bounce(p.calculateNormal(obstacles[i]))
	}

	if p.Bounces > p.BounceLimit {
		p.Active = false
		p.Vel = Vec{}
	}

	p.Body = p.Body.Moved(p.Vel)
	return p.Bounces - before
}

func (p *Projectile) bounce(normal Vec) {
	p.Vel = p.Vel.Reflect(normal)
	p.Bounces++
}

// calculateNormal picks the separating axis against obstacle: the offset of
// the overlap's centre from the shot's centre decides which face was hit.
// The larger component wins; ties go to the vertical axis.
func (p *Projectile) calculateNormal(obstacle Rect) Vec {
	overlap, ok := p.Body.Clip(obstacle)
	if !ok {
		return normalDown
	}
	d := overlap.Center().Sub(p.Body.Center())
	if math.Abs(d.X) > math.Abs(d.Y) {
		if d.X < 0 {
			return normalLeft
		}
		return normalRight
	}
	if d.Y < 0 {
		return normalUp
	}
	return normalDown
}
