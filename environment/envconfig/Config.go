// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/ralfroemer99/diffusion-planning/environment"
	"github.com/ralfroemer99/diffusion-planning/environment/planar"
	"github.com/ralfroemer99/diffusion-planning/environment/planar/pointmass"
	"github.com/ralfroemer99/diffusion-planning/environment/planar/quad2d"
	ts "github.com/ralfroemer99/diffusion-planning/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	PointMass EnvName = "PointMass"
	Quad2D    EnvName = "Quad2D"
)

// RewardName stores the reward forms that can be configured with this
// package
type RewardName string

// Reward forms available for configuration. Default selects the
// environment's own default form: plain distance for the point mass,
// squared distance for the quadrotor.
const (
	Default         RewardName = "Default"
	Distance        RewardName = "Distance"
	SquaredDistance RewardName = "SquaredDistance"
)

// Config implements a specific configuration of a specific environment.
// Target and InitialState may be nil, in which case they are sampled
// randomly each episode.
type Config struct {
	Environment EnvName

	MaxSteps int
	Epsilon  float64
	Discount float64

	Target       []float64
	InitialState []float64

	ResetTargetReached bool
	ResetOutOfBounds   bool
	BonusReward        bool
	Reward             RewardName
	ThetaAsSineCosine  bool

	MovingBoxes   int
	StaticBoxes   int
	MovingCircles int
	StaticCircles int

	Test bool
}

// NewConfig returns a new environment Config with default episode
// parameters
func NewConfig(envName EnvName) Config {
	return Config{
		Environment:       envName,
		MaxSteps:          100,
		Epsilon:           0.2,
		Discount:          1.0,
		Reward:            Default,
		ThetaAsSineCosine: true,
	}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	planarConfig := planar.NewConfig(seed)
	planarConfig.MaxSteps = c.MaxSteps
	planarConfig.Epsilon = c.Epsilon
	planarConfig.Discount = c.Discount
	planarConfig.ResetTargetReached = c.ResetTargetReached
	planarConfig.ResetOutOfBounds = c.ResetOutOfBounds
	planarConfig.BonusReward = c.BonusReward
	planarConfig.ThetaAsSineCosine = c.ThetaAsSineCosine
	planarConfig.MovingBoxes = c.MovingBoxes
	planarConfig.StaticBoxes = c.StaticBoxes
	planarConfig.MovingCircles = c.MovingCircles
	planarConfig.StaticCircles = c.StaticCircles
	planarConfig.Test = c.Test

	switch c.Reward {
	case Default:
		planarConfig.Reward = planar.DefaultReward
	case Distance:
		planarConfig.Reward = planar.Distance
	case SquaredDistance:
		planarConfig.Reward = planar.SquaredDistance
	default:
		return nil, ts.TimeStep{}, fmt.Errorf("create: no such reward "+
			"form %v", c.Reward)
	}

	if c.Target != nil {
		planarConfig.Target = mat.NewVecDense(len(c.Target), c.Target)
	}
	if c.InitialState != nil {
		planarConfig.InitialState = mat.NewVecDense(len(c.InitialState),
			c.InitialState)
	}

	switch c.Environment {
	case PointMass:
		return pointmass.New(planarConfig)

	case Quad2D:
		return quad2d.New(planarConfig)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}
