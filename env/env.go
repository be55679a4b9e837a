// Package env provides a small toy environment for exercising the search
// end to end without a learned model.
package env

// Environment is a single episodic control task.
type Environment interface {
	// Reset starts a new episode and returns the initial observation.
	Reset() []float64
	// Step applies one action and returns the next observation, the reward
	// earned, and whether the episode terminated.
	Step(action int) (observation []float64, reward float64, done bool)
}
