package game

import "math"

// Vec is a 2D vector in arena units. +Y points down (screen coordinates).
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Dot(o Vec) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) IsZero() bool        { return v.X == 0 && v.Y == 0 }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
func (v Vec) Neg() Vec            { return Vec{-v.X, -v.Y} }

// Reflect mirrors v about the line perpendicular to normal: v - 2(v·n)n.
// normal must be a unit vector.
func (v Vec) Reflect(normal Vec) Vec {
	d := 2 * v.Dot(normal)
	return Vec{v.X - d*normal.X, v.Y - d*normal.Y}
}

// FromAngle returns a vector of the given length pointing along angle (radians).
func FromAngle(angle, length float64) Vec {
	return Vec{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Rect is an axis-aligned rectangle with its top-left corner at (X,Y).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec {
	return Vec{r.X + r.W/2, r.Y + r.H/2}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Vec { return Vec{r.X, r.Y} }

// Moved returns r translated by d.
func (r Rect) Moved(d Vec) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Intersects reports whether r and o overlap with positive area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Clip returns the overlapping part of r and o. The bool is false when the
// rectangles do not intersect.
func (r Rect) Clip(o Rect) (Rect, bool) {
	if !r.Intersects(o) {
		return Rect{}, false
	}
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// CollideIndex returns the index of the first rectangle in rs that
// intersects r, or -1.
func (r Rect) CollideIndex(rs []Rect) int {
	for i, o := range rs {
		if r.Intersects(o) {
			return i
		}
	}
	return -1
}

// Segment is a line from Start to End, used for barrel indicators.
type Segment struct {
	Start, End Vec
}

// Arena is the playfield extent. Entities are kept inside [0,W-dim]×[0,H-dim].
type Arena struct {
	W, H float64
}

// InBounds reports whether r lies fully inside the arena.
func (a Arena) InBounds(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= a.W && r.Bottom() <= a.H
}

// Cardinal directions in the order the enemy AI draws them.
var (
	DirDown  = Vec{0, 1}
	DirRight = Vec{1, 0}
	DirUp    = Vec{0, -1}
	DirLeft  = Vec{-1, 0}

	cardinals = [4]Vec{DirDown, DirRight, DirUp, DirLeft}
)

// IsCardinal reports whether v is one of the four unit cardinal vectors.
func IsCardinal(v Vec) bool {
	for _, c := range cardinals {
		if v == c {
			return true
		}
	}
	return false
}
