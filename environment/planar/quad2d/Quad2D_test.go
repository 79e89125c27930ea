package quad2d

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/ralfroemer99/diffusion-planning/environment/planar"
)

// TestQuad2DHover checks that equal hover thrusts produce zero
// acceleration and that the inverse dynamics recover them exactly
func TestQuad2DHover(t *testing.T) {
	dyn := NewDynamics()
	hover := Mass * Gravity / 2

	sAugmented := mat.NewVecDense(8, []float64{
		1.0, 0, -2.0, 0, 0, 0, hover, hover,
	})
	dsdt := dyn.DsDt(sAugmented)

	for _, i := range []int{1, 3, 5} {
		if math.Abs(dsdt[i]) > 1e-12 {
			t.Errorf("derivative component %v = %v at hover, want 0", i,
				dsdt[i])
		}
	}

	// a hover-to-hover transition must be explained by the hover
	// thrusts
	state := mat.NewVecDense(6, []float64{1.0, 0, -2.0, 0, 0, 0})
	action := dyn.InverseDynamics(state, state)

	if math.Abs(action.AtVec(0)-hover) > 1e-12 ||
		math.Abs(action.AtVec(1)-hover) > 1e-12 {
		t.Errorf("got thrusts (%v, %v), want (%v, %v)", action.AtVec(0),
			action.AtVec(1), hover, hover)
	}
}

// TestQuad2DSampleAction checks that sampled thrust pairs respect the
// actuator limits and the maximum thrust difference
func TestQuad2DSampleAction(t *testing.T) {
	dyn := NewDynamics()
	rng := rand.New(rand.NewSource(19))

	minThrust := MinRelThrust * Mass * Gravity / 2
	maxThrust := MaxRelThrust * Mass * Gravity / 2
	maxDiff := MaxRelThrustDiff * Mass * Gravity

	for i := 0; i < 1000; i++ {
		action := dyn.SampleAction(rng)
		a1, a2 := action.AtVec(0), action.AtVec(1)

		if a1 < minThrust || a1 > maxThrust || a2 < minThrust ||
			a2 > maxThrust {
			t.Fatalf("thrusts (%v, %v) outside [%v, %v]", a1, a2,
				minThrust, maxThrust)
		}
		if math.Abs(a1-a2) > maxDiff {
			t.Fatalf("thrust difference %v exceeds %v", math.Abs(a1-a2),
				maxDiff)
		}
	}
}

// TestQuad2DValidStart checks the braking constraint on starting
// states
func TestQuad2DValidStart(t *testing.T) {
	dyn := NewDynamics()

	if !dyn.ValidStart(mat.NewVecDense(6, []float64{0, 0, 0, 0, 0, 0})) {
		t.Error("resting state at the centre rejected")
	}

	// full velocity towards a nearby wall cannot be braked in time
	if dyn.ValidStart(mat.NewVecDense(6, []float64{4.9, 5, 0, 0, 0, 0})) {
		t.Error("unbrakeable state accepted")
	}
	if dyn.ValidStart(mat.NewVecDense(6, []float64{0, 0, -4.9, -5, 0, 0})) {
		t.Error("unbrakeable state accepted")
	}

	// moving away from the near wall is fine
	if !dyn.ValidStart(mat.NewVecDense(6, []float64{-4.9, 5, 0, 0, 0, 0})) {
		t.Error("brakeable state rejected")
	}
}

// TestQuad2DAngleWrap checks that the orientation stays in the
// principal interval while a large thrust difference spins the body
func TestQuad2DAngleWrap(t *testing.T) {
	c := planar.NewConfig(29)
	c.Target = mat.NewVecDense(2, []float64{3.0, 3.0})
	c.InitialState = mat.NewVecDense(6, []float64{0, 0, 0, 0, 0, 0})

	env, _, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	dyn := NewDynamics()
	spin := mat.NewVecDense(2, []float64{dyn.maxThrust, dyn.minThrust})

	for i := 0; i < 200; i++ {
		env.Step(spin)

		state := env.State()
		theta := state.AtVec(4)
		if theta < -MaxAng || theta >= MaxAng {
			t.Fatalf("step %v: orientation %v escaped [-π, π)", i, theta)
		}
		if dtheta := state.AtVec(5); dtheta < -MaxVelAng ||
			dtheta > MaxVelAng {
			t.Fatalf("step %v: angular rate %v escaped ±%v", i, dtheta,
				MaxVelAng)
		}
	}
}

// TestQuad2DObservation checks both observation layouts
func TestQuad2DObservation(t *testing.T) {
	dyn := NewDynamics()
	state := mat.NewVecDense(6, []float64{1, 2, 3, 4, math.Pi / 2, 0.5})
	target := mat.NewVecDense(2, []float64{-1, -2})

	obs := dyn.Observe(state, target, true)
	if obs.Len() != 9 {
		t.Fatalf("got observation length %v, want 9", obs.Len())
	}
	if math.Abs(obs.AtVec(4)-1) > 1e-12 || math.Abs(obs.AtVec(5)) > 1e-12 {
		t.Errorf("got (sin θ, cos θ) = (%v, %v), want (1, 0)",
			obs.AtVec(4), obs.AtVec(5))
	}
	if obs.AtVec(7) != -1 || obs.AtVec(8) != -2 {
		t.Errorf("got target (%v, %v), want (-1, -2)", obs.AtVec(7),
			obs.AtVec(8))
	}

	raw := dyn.Observe(state, target, false)
	if raw.Len() != 8 {
		t.Fatalf("got observation length %v, want 8", raw.Len())
	}
	if raw.AtVec(4) != math.Pi/2 || raw.AtVec(5) != 0.5 {
		t.Errorf("got (θ, θ̇) = (%v, %v), want (%v, 0.5)", raw.AtVec(4),
			raw.AtVec(5), math.Pi/2)
	}
}

// TestQuad2DInverseDynamics recovers the thrusts of a simulated
// transition up to the accuracy of finite differencing
func TestQuad2DInverseDynamics(t *testing.T) {
	c := planar.NewConfig(31)
	c.Target = mat.NewVecDense(2, []float64{3.0, 3.0})
	c.InitialState = mat.NewVecDense(6, []float64{0, 0, 0, 0, 0, 0})

	env, _, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	dyn := NewDynamics()
	hover := Mass * Gravity / 2
	action := mat.NewVecDense(2, []float64{hover + 0.002, hover - 0.002})

	before := env.State()
	env.Step(action)

	recovered := env.InverseDynamics(before, env.State())
	if math.Abs(recovered.AtVec(0)-action.AtVec(0)) > 1e-3 ||
		math.Abs(recovered.AtVec(1)-action.AtVec(1)) > 1e-3 {
		t.Errorf("got thrusts %v, want %v within 1e-3", recovered, action)
	}

	if math.Abs(dyn.inertia-Mass*Length*Length/12) > 1e-15 {
		t.Errorf("got inertia %v, want %v", dyn.inertia,
			Mass*Length*Length/12)
	}
}
