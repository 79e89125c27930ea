package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/ralfroemer99/diffusion-planning/environment/envconfig"
	"github.com/ralfroemer99/diffusion-planning/environment/planar"
	"github.com/ralfroemer99/diffusion-planning/environment/planar/quad2d"
	"github.com/ralfroemer99/diffusion-planning/experiment/dataset"
)

func main() {
	var seed uint64 = 192382

	// Create the environment
	c := planar.NewConfig(seed)
	c.ResetTargetReached = true
	c.ResetOutOfBounds = true
	c.MovingBoxes = 2
	c.StaticBoxes = 2
	c.MovingCircles = 1
	c.StaticCircles = 1

	env, step, err := quad2d.New(c)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(step)

	// Fly on random thrusts until the episode resolves
	for {
		step, last := env.Step(env.SampleAction())
		if last {
			fmt.Println(step)
			break
		}
	}

	switch env.TargetReached() {
	case 1:
		fmt.Println("target reached")
	case -1:
		fmt.Println("collided with an obstacle")
	default:
		fmt.Println("episode over:", env.CurrentTimeStep().EndType())
	}

	if err := env.Render("./quad2d.png"); err != nil {
		log.Fatal(err)
	}

	// Recover the thrusts explaining the last transition of a fresh
	// episode
	env.Reset()
	before := env.State()
	env.Step(mat.NewVecDense(2, []float64{0.5, 0.5}))
	fmt.Println(env.InverseDynamics(before, env.State()))

	// Generate (or load) an offline dataset of random-action episodes
	data, err := dataset.Get(env, 100, c.MaxSteps, "./quad2d_dataset.bin")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("dataset steps:", data.Len())

	// A point mass on the same task, built from a serializable config
	pmConfig := envconfig.NewConfig(envconfig.PointMass)
	pmConfig.ResetTargetReached = true
	pmConfig.Target = []float64{3.0, 0.0}
	pmConfig.InitialState = []float64{0, 0, 0, 0}

	pm, step, err := pmConfig.Create(seed)
	if err != nil {
		log.Fatal(err)
	}
	for !step.Last() {
		step, _ = pm.Step(mat.NewVecDense(2, []float64{5.0, 0.0}))
	}
	fmt.Println(step)
}
