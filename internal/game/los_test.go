package game

import "testing"

func TestLOS_ClearLine(t *testing.T) {
	if !HasLineOfSight(Vec{0, 0}, Vec{100, 100}, nil) {
		t.Fatal("expected clear LOS with no obstacles")
	}
}

func TestLOS_BlockedByWall(t *testing.T) {
	walls := []Rect{{X: 40, Y: 0, W: 20, H: 200}}
	if HasLineOfSight(Vec{0, 100}, Vec{200, 100}, walls) {
		t.Fatal("expected LOS blocked by wall")
	}
}

func TestLOS_WallBeyondEndpoint_NotBlocked(t *testing.T) {
	walls := []Rect{{X: 300, Y: 0, W: 64, H: 64}}
	if !HasLineOfSight(Vec{0, 32}, Vec{200, 32}, walls) {
		t.Fatal("wall beyond endpoint should not block LOS")
	}
}

func TestLOS_VerticalRay_Blocked(t *testing.T) {
	if HasLineOfSight(Vec{250, 450}, Vec{250, 100}, DefaultObstacles()) {
		t.Fatal("expected vertical ray blocked by the lower wall")
	}
}

func TestLOS_DiagonalRay_Blocked(t *testing.T) {
	walls := []Rect{{X: 80, Y: 80, W: 40, H: 40}}
	if HasLineOfSight(Vec{0, 0}, Vec{200, 200}, walls) {
		t.Fatal("diagonal ray should be blocked")
	}
}

func TestLOS_ZeroLength(t *testing.T) {
	walls := []Rect{{X: 0, Y: 0, W: 100, H: 100}}
	if HasLineOfSight(Vec{50, 50}, Vec{50, 50}, walls) {
		t.Fatal("a point inside a wall has no LOS")
	}
	if !HasLineOfSight(Vec{150, 150}, Vec{150, 150}, walls) {
		t.Fatal("a point outside every wall has LOS")
	}
}

func TestClearShot_GapNarrowerThanShot(t *testing.T) {
	// Two walls leave a 4-unit slot at y=98..102.
	walls := []Rect{
		{X: 100, Y: 0, W: 10, H: 98},
		{X: 100, Y: 102, W: 10, H: 98},
	}
	a, b := Vec{0, 100}, Vec{200, 100}
	if !HasLineOfSight(a, b, walls) {
		t.Fatal("centre line should pass through the slot")
	}
	if HasClearShot(a, b, projectileSize, walls) {
		t.Fatal("a 6-unit shot does not fit a 4-unit slot")
	}
	if !HasClearShot(a, b, 2, walls) {
		t.Fatal("a 2-unit shot fits a 4-unit slot")
	}
}

func TestSegmentHitT_EntryParameter(t *testing.T) {
	r := Rect{X: 50, Y: 0, W: 10, H: 100}
	tHit, ok := segmentHitT(Vec{0, 50}, Vec{100, 50}, r)
	if !ok || tHit != 0.5 {
		t.Fatalf("segmentHitT = (%v,%v), want (0.5,true)", tHit, ok)
	}
}
