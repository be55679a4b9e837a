package search

import "fmt"

// perturb advances every walker by one sampled action. The dynamics model is
// called once with the whole batch and the returned states replace the
// population wholesale; the prediction model then values the new states. Shape
// mismatches are fatal, there is no partial-failure mode mid-iteration.
func (f *FMC) perturb(r *run) error {
	for i := range r.actions {
		r.actions[i] = f.sampler.Sample(f.rng)
	}

	next, rewards, err := f.dynamics.Step(f.state, r.actions)
	if err != nil {
		return fmt.Errorf("dynamics step: %w", err)
	}
	if rows, cols := next.Dims(); rows != f.numWalkers || cols != f.embeddingSize {
		return fmt.Errorf("dynamics returned a %dx%d state batch, want %dx%d", rows, cols, f.numWalkers, f.embeddingSize)
	}
	if len(rewards) != f.numWalkers {
		return fmt.Errorf("dynamics returned %d rewards for %d walkers", len(rewards), f.numWalkers)
	}
	f.state = next
	copy(r.rewards, rewards)
	for i, reward := range rewards {
		r.rewardBuffer.Set(i, r.iteration, reward)
	}

	_, values, err := f.prediction.Predict(f.state)
	if err != nil {
		return fmt.Errorf("prediction: %w", err)
	}
	if len(values) != f.numWalkers {
		return fmt.Errorf("prediction returned %d values for %d walkers", len(values), f.numWalkers)
	}
	copy(r.values, values)

	if r.iteration == 0 {
		copy(r.rootActions, r.actions)
	}
	return nil
}
