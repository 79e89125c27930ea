package pointmass

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ralfroemer99/diffusion-planning/environment/planar"
	ts "github.com/ralfroemer99/diffusion-planning/timestep"
)

// TestPointMassReachesTarget drives the point mass at full
// acceleration towards a fixed target and checks the approach is
// monotone and ends within epsilon of the target
func TestPointMassReachesTarget(t *testing.T) {
	c := planar.NewConfig(42)
	c.ResetTargetReached = true
	c.Target = mat.NewVecDense(2, []float64{3.0, 0.0})
	c.InitialState = mat.NewVecDense(4, []float64{0, 0, 0, 0})

	env, first, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	action := mat.NewVecDense(2, []float64{MaxAcc, 0.0})
	lastX := first.Observation.AtVec(0)

	var last ts.TimeStep
	for {
		step, done := env.Step(action)

		if x := step.Observation.AtVec(0); x <= lastX {
			t.Fatalf("x stopped increasing: %v -> %v", lastX, x)
		} else {
			lastX = x
		}

		if done {
			last = step
			break
		}
	}

	if last.EndType() != ts.TerminalStateReached {
		t.Fatalf("got end type %v, want %v", last.EndType(),
			ts.TerminalStateReached)
	}
	if env.TargetReached() != 1 {
		t.Errorf("got TargetReached %v, want 1", env.TargetReached())
	}

	// accelerating at 5 m/s^2 with velocity saturating at 5 m/s puts
	// the mass within 0.2 of x = 3 on the 11th step
	if last.Number != 11 {
		t.Errorf("reached the target on step %v, want 11", last.Number)
	}

	distance := math.Hypot(last.Observation.AtVec(0)-3.0,
		last.Observation.AtVec(2))
	if distance > c.Epsilon {
		t.Errorf("terminal distance %v exceeds epsilon %v", distance,
			c.Epsilon)
	}
}

// TestPointMassReward checks the distance reward against a transition
// with a known terminal position
func TestPointMassReward(t *testing.T) {
	c := planar.NewConfig(1)
	c.Target = mat.NewVecDense(2, []float64{3.0, 0.0})
	c.InitialState = mat.NewVecDense(4, []float64{0, 0, 0, 0})

	env, _, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	// one step at full acceleration moves the mass to x = 0.025
	step, _ := env.Step(mat.NewVecDense(2, []float64{MaxAcc, 0.0}))

	want := -math.Abs(3.0 - 0.025)
	if math.Abs(step.Reward-want) > 1e-12 {
		t.Errorf("got reward %v, want %v", step.Reward, want)
	}
}

// TestPointMassInverseDynamics checks that the closed-form inverse
// recovers the applied acceleration exactly for the double integrator
func TestPointMassInverseDynamics(t *testing.T) {
	c := planar.NewConfig(3)
	c.Target = mat.NewVecDense(2, []float64{3.0, 0.0})
	c.InitialState = mat.NewVecDense(4, []float64{0, 0, 0, 0})

	env, _, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	action := mat.NewVecDense(2, []float64{1.5, -2.25})
	before := env.State()
	env.Step(action)

	recovered := env.InverseDynamics(before, env.State())
	if !mat.EqualApprox(recovered, action, 1e-10) {
		t.Errorf("got action %v, want %v", recovered, action)
	}
}

// TestPointMassObservation checks the observation layout
func TestPointMassObservation(t *testing.T) {
	target := mat.NewVecDense(2, []float64{1.5, -2.0})
	state := mat.NewVecDense(4, []float64{0.5, 1.0, -0.5, 2.0})

	obs := Dynamics{}.Observe(state, target, true)
	want := []float64{0.5, 1.0, -0.5, 2.0, 1.5, -2.0}

	if obs.Len() != len(want) {
		t.Fatalf("got observation length %v, want %v", obs.Len(),
			len(want))
	}
	for i, w := range want {
		if obs.AtVec(i) != w {
			t.Errorf("observation component %v: got %v, want %v", i,
				obs.AtVec(i), w)
		}
	}
}
