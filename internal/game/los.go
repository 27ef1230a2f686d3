package game

import "math"

// HasLineOfSight returns true if the segment a→b does not cross any
// obstacle. Uses ray-vs-AABB slab tests.
func HasLineOfSight(a, b Vec, obstacles []Rect) bool {
	for _, o := range obstacles {
		if _, hit := segmentHitT(a, b, o); hit {
			return false
		}
	}
	return true
}

// HasClearShot is HasLineOfSight for a body of the given width: the centre
// line and both edge lines must be clear.
func HasClearShot(a, b Vec, width float64, obstacles []Rect) bool {
	d := b.Sub(a)
	l := d.Len()
	if l < 1e-9 {
		return HasLineOfSight(a, b, obstacles)
	}
	// Unit normal to the shot direction, scaled to half the width.
	n := Vec{-d.Y / l, d.X / l}.Scale(width / 2)
	return HasLineOfSight(a, b, obstacles) &&
		HasLineOfSight(a.Add(n), b.Add(n), obstacles) &&
		HasLineOfSight(a.Sub(n), b.Sub(n), obstacles)
}

// segmentHitT returns the first parameter t in [0,1] where the segment
// a→b enters r. The bool is false when no hit exists.
func segmentHitT(a, b Vec, r Rect) (float64, bool) {
	tMin, tMax := 0.0, 1.0

	slab := func(origin, delta, lo, hi float64) bool {
		if math.Abs(delta) < 1e-12 {
			return origin >= lo && origin <= hi
		}
		t1 := (lo - origin) / delta
		t2 := (hi - origin) / delta
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		return tMin <= tMax
	}

	d := b.Sub(a)
	if !slab(a.X, d.X, r.X, r.Right()) {
		return 0, false
	}
	if !slab(a.Y, d.Y, r.Y, r.Bottom()) {
		return 0, false
	}
	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}
