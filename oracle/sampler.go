package oracle

import "golang.org/x/exp/rand"

// UniformSampler draws uniformly from a discrete action space.
type UniformSampler struct {
	numActions int
}

func NewUniformSampler(numActions int) UniformSampler {
	if numActions <= 0 {
		panic("action space must not be empty")
	}
	return UniformSampler{numActions: numActions}
}

func (s UniformSampler) Sample(rng *rand.Rand) int {
	return rng.Intn(s.numActions)
}
