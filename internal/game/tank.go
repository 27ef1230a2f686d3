package game

import "math"

const (
	tankSize     = 20
	barrelLength = 25

	// MaxPlayerShots caps the player's projectiles in flight.
	MaxPlayerShots = 3
)

// DefaultPlayerStart is where the player tank spawns on the default map.
var DefaultPlayerStart = Vec{50, 450}

// MoveInput is the held state of the four movement keys.
type MoveInput struct {
	Up, Down, Left, Right bool
}

// Any reports whether at least one direction is held.
func (m MoveInput) Any() bool { return m.Up || m.Down || m.Left || m.Right }

// Tank is the player-controlled body. It lives for the whole round.
type Tank struct {
	Label string
	Body  Rect
}

// NewTank places a tank with its top-left corner at pos.
func NewTank(pos Vec) *Tank {
	return &Tank{
		Label: "P",
		Body:  Rect{X: pos.X, Y: pos.Y, W: tankSize, H: tankSize},
	}
}

// Center returns the centre of the tank body.
func (t *Tank) Center() Vec { return t.Body.Center() }

// Move steps the tank one unit per held direction, resolving each axis step
// on its own: a step that leaves the arena or overlaps an obstacle is rolled
// back. Diagonal input is two sequential axis-aligned steps.
func (t *Tank) Move(in MoveInput, arena Arena, obstacles []Rect) {
	if in.Up {
		t.step(DirUp, arena, obstacles)
	}
	if in.Down {
		t.step(DirDown, arena, obstacles)
	}
	if in.Left {
		t.step(DirLeft, arena, obstacles)
	}
	if in.Right {
		t.step(DirRight, arena, obstacles)
	}
}

func (t *Tank) step(dir Vec, arena Arena, obstacles []Rect) {
	next := t.Body.Moved(dir)
	if !arena.InBounds(next) || next.CollideIndex(obstacles) >= 0 {
		return
	}
	t.Body = next
}

// AimAngle returns the screen-space angle from the tank centre to pointer,
// as used to launch a shot (+Y down).
func (t *Tank) AimAngle(pointer Vec) float64 {
	c := t.Center()
	return math.Atan2(pointer.Y-c.Y, pointer.X-c.X)
}

// Aim returns the barrel indicator: a fixed-length segment from the tank
// centre toward pointer. The angle is taken with Y inverted and mapped back
// to screen space, so the segment points at the cursor.
func (t *Tank) Aim(pointer Vec) Segment {
	c := t.Center()
	angle := math.Atan2(c.Y-pointer.Y, pointer.X-c.X)
	end := Vec{
		X: c.X + barrelLength*math.Cos(angle),
		Y: c.Y - barrelLength*math.Sin(angle),
	}
	return Segment{Start: c, End: end}
}

// Fire launches a player shot from the tank centre toward pointer.
func (t *Tank) Fire(pointer Vec, bounceLimit int) *Projectile {
	p := FireProjectile(t.Center(), t.AimAngle(pointer), bounceLimit)
	p.Owner = t.Label
	return p
}
