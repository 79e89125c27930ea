package planar

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RewardForm selects the shape of the per-step reward
type RewardForm int

const (
	// DefaultReward uses the model's conventional reward form:
	// negative distance for the point mass, negative squared distance
	// for the quadrotor
	DefaultReward RewardForm = iota

	// Distance rewards the negative Euclidean distance to the target
	Distance

	// SquaredDistance rewards the negative squared Euclidean distance
	// to the target
	SquaredDistance
)

// Config holds the construction-time options of a planar environment.
// The zero value is not usable; start from NewConfig and adjust.
type Config struct {
	// Seed initializes the environment's private random source, which
	// drives obstacle generation, start/target sampling, and action
	// sampling. Environments with equal seeds and configurations
	// produce bit-identical episodes.
	Seed uint64

	// MaxSteps is the per-episode step budget. The budget termination
	// is always active, independent of the Reset* flags below.
	MaxSteps int

	// Epsilon is the success-distance threshold between the body
	// position and the target
	Epsilon float64

	// Discount is attached to every timestep of the environment
	Discount float64

	// Target fixes the target position for all episodes. When nil,
	// a fresh target is rejection-sampled at every reset.
	Target *mat.VecDense

	// InitialState fixes the starting state for all episodes. It may
	// only be set together with Target (paired, non-random mode);
	// otherwise starting states are rejection-sampled at every reset.
	InitialState *mat.VecDense

	// ResetTargetReached ends episodes once the body is within
	// Epsilon of the target
	ResetTargetReached bool

	// ResetOutOfBounds ends episodes once any clamped state component
	// saturates at its bound
	ResetOutOfBounds bool

	// BonusReward adds a fixed bonus to the reward on steps where the
	// body is within Epsilon of the target
	BonusReward bool

	// Reward selects the per-step reward form
	Reward RewardForm

	// ThetaAsSineCosine selects whether models with an orientation
	// observe it as (sin θ, cos θ) instead of the raw angle
	ThetaAsSineCosine bool

	// Obstacle population. When all four counts are zero, no obstacle
	// logic runs.
	MovingBoxes   int
	StaticBoxes   int
	MovingCircles int
	StaticCircles int

	// Test enables the stricter paired-evaluation start mode: the
	// quadrotor starts hovering with restricted orientation, and only
	// position components are bound-checked for termination
	Test bool
}

// NewConfig returns a Config with the conventional defaults: a random
// target, 100-step episodes, success threshold 0.2, no obstacles, and
// orientation observed as sine/cosine.
func NewConfig(seed uint64) Config {
	return Config{
		Seed:              seed,
		MaxSteps:          100,
		Epsilon:           0.2,
		Discount:          1.0,
		ThetaAsSineCosine: true,
	}
}

// validate checks a Config against the dynamics model it will drive
func (c Config) validate(dyn Dynamics) error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("config: MaxSteps must be positive, got %v",
			c.MaxSteps)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("config: Epsilon must be positive, got %v",
			c.Epsilon)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("config: Discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.Target != nil && c.Target.Len() != 2 {
		return fmt.Errorf("config: Target must have length 2, got %v",
			c.Target.Len())
	}
	if c.InitialState != nil {
		if c.Target == nil {
			return fmt.Errorf("config: InitialState requires a fixed Target")
		}
		if c.InitialState.Len() != dyn.StateDims() {
			return fmt.Errorf("config: InitialState length %v does not "+
				"match state dimension %v", c.InitialState.Len(),
				dyn.StateDims())
		}
	}
	if c.MovingBoxes < 0 || c.StaticBoxes < 0 || c.MovingCircles < 0 ||
		c.StaticCircles < 0 {
		return fmt.Errorf("config: obstacle counts must be non-negative")
	}
	return nil
}

// obstacleCount returns the total number of obstacles the Config asks
// for
func (c Config) obstacleCount() int {
	return c.MovingBoxes + c.StaticBoxes + c.MovingCircles + c.StaticCircles
}
