// Package dataset generates and persists offline datasets of
// environment transitions under randomly sampled actions, in the
// layout that offline reinforcement learning pipelines expect: flat
// per-step arrays of observations, actions, rewards, terminals, and
// timeouts.
package dataset

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ralfroemer99/diffusion-planning/environment/planar"
	"github.com/ralfroemer99/diffusion-planning/utils/progressbar"
)

// minEpisodeLength is the fewest steps an episode may have to be
// included in a dataset. Shorter episodes are discarded and the
// episode is regenerated under a fresh seed.
const minEpisodeLength int = 16

// Dataset holds the transitions of a collection of episodes. Entry i
// of each field describes step i: the observation the action was
// taken from, the action, the reward for the resulting transition,
// whether the episode ended on it, and whether it was the episode's
// step-budget cutoff.
type Dataset struct {
	Observations [][]float64
	Actions      [][]float64
	Rewards      []float64
	Terminals    []bool
	Timeouts     []bool
}

// Len returns the total number of steps in the dataset
func (d *Dataset) Len() int {
	return len(d.Rewards)
}

// Make generates a dataset of episodes episodes by driving env with
// randomly sampled actions for at most maxSteps steps per episode.
// The environment is reseeded before each episode so that the dataset
// is a pure function of the environment configuration. Episodes
// shorter than the minimum episode length are discarded.
func Make(env *planar.Env, episodes, maxSteps int) *Dataset {
	data := &Dataset{}
	bar := progressbar.New(50, episodes)

	accepted := 0
	for attempt := 0; accepted < episodes; attempt++ {
		env.Seed(uint64(attempt))
		step := env.Reset()

		var (
			observations [][]float64
			actions      [][]float64
			rewards      []float64
			terminals    []bool
			timeouts     []bool
		)

		for i := 0; i < maxSteps; i++ {
			action := env.SampleAction()
			nextStep, done := env.Step(action)

			observations = append(observations, vecData(step.Observation))
			actions = append(actions, vecData(action))
			rewards = append(rewards, nextStep.Reward)
			terminals = append(terminals, done)
			timeouts = append(timeouts, i == maxSteps-1)

			step = nextStep
			if done {
				break
			}
		}

		if len(rewards) < minEpisodeLength {
			continue
		}
		accepted++

		data.Observations = append(data.Observations, observations...)
		data.Actions = append(data.Actions, actions...)
		data.Rewards = append(data.Rewards, rewards...)
		data.Terminals = append(data.Terminals, terminals...)
		data.Timeouts = append(data.Timeouts, timeouts...)

		bar.Increment()
		if accepted%100 == 0 || accepted == episodes {
			bar.Display()
		}
	}

	log.Printf("dataset: generated %v episodes, %v steps", episodes,
		data.Len())
	return data
}

// Save encodes the dataset to a file
func (d *Dataset) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(d); err != nil {
		return fmt.Errorf("save: could not encode dataset: %v", err)
	}
	return nil
}

// Load decodes a dataset from a file
func Load(filename string) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	data := &Dataset{}
	if err := gob.NewDecoder(file).Decode(data); err != nil {
		return nil, fmt.Errorf("load: could not decode dataset: %v", err)
	}
	return data, nil
}

// Get returns the dataset cached at filename, generating and caching
// it first if the file does not exist
func Get(env *planar.Env, episodes, maxSteps int,
	filename string) (*Dataset, error) {
	if _, err := os.Stat(filename); err == nil {
		return Load(filename)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("get: could not stat cache file: %v", err)
	}

	data := Make(env, episodes, maxSteps)
	if err := data.Save(filename); err != nil {
		return nil, err
	}
	return data, nil
}

// vecData copies a vector's components into a plain slice
func vecData(v *mat.VecDense) []float64 {
	data := make([]float64, v.Len())
	copy(data, v.RawVector().Data)
	return data
}
