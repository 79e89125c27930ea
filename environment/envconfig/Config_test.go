package envconfig

import (
	"encoding/json"
	"testing"
)

// TestCreate checks that both environments are constructable from a
// Config and report the right observation sizes
func TestCreate(t *testing.T) {
	tests := []struct {
		env     EnvName
		obsDims int
	}{
		{PointMass, 6},
		{Quad2D, 9},
	}

	for _, test := range tests {
		c := NewConfig(test.env)
		c.MovingBoxes = 1
		c.StaticCircles = 1

		env, first, err := c.Create(14)
		if err != nil {
			t.Fatalf("%v: %v", test.env, err)
		}

		if !first.First() {
			t.Errorf("%v: first timestep is not First", test.env)
		}
		if first.Observation.Len() != test.obsDims {
			t.Errorf("%v: got observation length %v, want %v", test.env,
				first.Observation.Len(), test.obsDims)
		}
		if env.ObservationSpec().Shape.Len() != test.obsDims {
			t.Errorf("%v: got observation spec length %v, want %v",
				test.env, env.ObservationSpec().Shape.Len(), test.obsDims)
		}
	}
}

// TestCreateUnknown checks the error paths
func TestCreateUnknown(t *testing.T) {
	if _, _, err := NewConfig("Hexapod").Create(0); err == nil {
		t.Error("expected an error for an unknown environment")
	}

	c := NewConfig(PointMass)
	c.Reward = "Sparse"
	if _, _, err := c.Create(0); err == nil {
		t.Error("expected an error for an unknown reward form")
	}
}

// TestConfigJSON round-trips a Config through JSON
func TestConfigJSON(t *testing.T) {
	c := NewConfig(Quad2D)
	c.Target = []float64{1.5, -2.0}
	c.StaticBoxes = 3
	c.Test = true

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Config
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.Environment != Quad2D || decoded.StaticBoxes != 3 ||
		!decoded.Test || len(decoded.Target) != 2 {
		t.Errorf("round trip changed the config: %+v", decoded)
	}
}
