package planar

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

// TestFieldGenerate checks the layout invariants of a generated
// obstacle field: group ordering, size and velocity ranges, placement
// inside the domain, and pairwise separation
func TestFieldGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	field := NewField(2, 2, 1, 1, 5.0, 5.0, 5.0, 5.0, 0.05)

	if err := field.Generate(rng); err != nil {
		t.Fatal(err)
	}

	obstacles := field.Obstacles()
	if len(obstacles) != 6 {
		t.Fatalf("got %v obstacles, want 6", len(obstacles))
	}

	wantKind := []ShapeKind{Box, Box, Box, Box, Circle, Circle}
	wantMoving := []bool{true, true, false, false, true, false}
	for i, o := range obstacles {
		if o.Kind != wantKind[i] {
			t.Errorf("obstacle %v: got kind %v, want %v", i, o.Kind,
				wantKind[i])
		}
		if o.Moving != wantMoving[i] {
			t.Errorf("obstacle %v: got moving %v, want %v", i, o.Moving,
				wantMoving[i])
		}
		if !o.Moving && (o.VX != 0 || o.VY != 0) {
			t.Errorf("obstacle %v: static obstacle has velocity (%v, %v)",
				i, o.VX, o.VY)
		}
		if o.Moving && (math.Abs(o.VX) > 2.5 || math.Abs(o.VY) > 2.5) {
			t.Errorf("obstacle %v: velocity (%v, %v) outside ±2.5", i,
				o.VX, o.VY)
		}

		if o.Size < MinObstacleSize || o.Size > MaxObstacleSize {
			t.Errorf("obstacle %v: size %v outside [%v, %v]", i, o.Size,
				MinObstacleSize, MaxObstacleSize)
		}
		if math.Abs(o.X) > (2*5.0-o.Size)/2 || math.Abs(o.Y) > (2*5.0-o.Size)/2 {
			t.Errorf("obstacle %v: centre (%v, %v) outside the domain", i,
				o.X, o.Y)
		}

		for j := 0; j < i; j++ {
			dist := math.Hypot(obstacles[j].X-o.X, obstacles[j].Y-o.Y)
			if dist < MinObstacleSeparation {
				t.Errorf("obstacles %v and %v separated by %v < %v", j, i,
					dist, MinObstacleSeparation)
			}
		}
	}
}

// TestFieldGenerateInfeasible checks that an impossible layout is
// reported as an error rather than looping forever
func TestFieldGenerateInfeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	// 50 obstacles with pairwise separation 2 cannot fit in a 10x10
	// domain
	field := NewField(0, 50, 0, 0, 5.0, 5.0, 5.0, 5.0, 0.05)
	if err := field.Generate(rng); err == nil {
		t.Error("expected an error for an infeasible layout")
	}
}

// TestFieldStepReflection checks that a velocity component flips one
// step before the obstacle would cross a domain wall, and that the
// position update uses the flipped velocity
func TestFieldStepReflection(t *testing.T) {
	field := NewField(1, 0, 0, 0, 5.0, 5.0, 5.0, 5.0, 0.1)
	field.obstacles = []Obstacle{
		{Kind: Box, X: 4.5, Y: 0, VX: 4.0, VY: 0, Size: 0.4, Moving: true},
	}

	// next x would be 4.9, past the wall at 5 - 0.2: reflect now
	field.Step()

	o := field.Obstacles()[0]
	if o.VX != -4.0 {
		t.Errorf("got VX %v, want -4.0", o.VX)
	}
	if math.Abs(o.X-4.1) > 1e-12 {
		t.Errorf("got X %v, want 4.1", o.X)
	}

	// far from every wall: no reflection
	field.obstacles = []Obstacle{
		{Kind: Box, X: 0, Y: 0, VX: 2.0, VY: -1.0, Size: 0.4, Moving: true},
	}
	field.Step()

	o = field.Obstacles()[0]
	if o.VX != 2.0 || o.VY != -1.0 {
		t.Errorf("velocity (%v, %v) changed away from the walls", o.VX, o.VY)
	}
	if math.Abs(o.X-0.2) > 1e-12 || math.Abs(o.Y+0.1) > 1e-12 {
		t.Errorf("got position (%v, %v), want (0.2, -0.1)", o.X, o.Y)
	}
}

// TestFieldPredict checks that predictions start at the current
// layout, match the live field stepped forward, and do not mutate it
func TestFieldPredict(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	field := NewField(2, 1, 1, 1, 5.0, 5.0, 5.0, 5.0, 0.05)
	if err := field.Generate(rng); err != nil {
		t.Fatal(err)
	}

	before := field.Obstacles()
	predictions := field.Predict(10)

	if len(predictions) != 10 {
		t.Fatalf("got %v prediction steps, want 10", len(predictions))
	}
	for i, o := range predictions[0] {
		if o != before[i] {
			t.Errorf("prediction step 0 obstacle %v: got %v, want %v", i,
				o, before[i])
		}
	}
	for i, o := range field.Obstacles() {
		if o != before[i] {
			t.Errorf("Predict mutated the field: obstacle %v is %v, was %v",
				i, o, before[i])
		}
	}

	// predictions must coincide with actually stepping the field
	for step := 1; step < 10; step++ {
		field.Step()
		for i, o := range field.Obstacles() {
			if o != predictions[step][i] {
				t.Errorf("step %v obstacle %v: predicted %v, stepped to %v",
					step, i, predictions[step][i], o)
			}
		}
	}
}

// TestObstacleContains checks point membership for both shapes
func TestObstacleContains(t *testing.T) {
	box := Obstacle{Kind: Box, X: 1, Y: 1, Size: 0.4}
	if !box.Contains(1.1, 0.9) {
		t.Error("point inside the box reported outside")
	}
	if box.Contains(1.3, 1.0) {
		t.Error("point outside the box reported inside")
	}
	if !box.ContainsWithin(1.3, 1.0, 0.2) {
		t.Error("point inside the grown box reported outside")
	}

	circle := Obstacle{Kind: Circle, X: -2, Y: 0, Size: 0.3}
	if !circle.Contains(-2.2, 0.1) {
		t.Error("point inside the circle reported outside")
	}
	if circle.Contains(-2.4, 0.2) {
		t.Error("point outside the circle reported inside")
	}
}
