// Package oracle defines the external collaborators the search drives: a
// dynamics model that advances walker states, a prediction model that values
// them, and an action sampler. The search treats all three as opaque and only
// requires that batch shapes are preserved.
package oracle

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Dynamics advances a whole walker population by one action each. Step must
// return one next-state row and one reward per input row; the search treats
// any shape drift as fatal.
type Dynamics interface {
	Step(states *mat.Dense, actions []int) (next *mat.Dense, rewards []float64, err error)
}

// Prediction estimates a value per walker state. The policy output, when the
// backing model has one, is not consumed by the search and may be nil.
type Prediction interface {
	Predict(states *mat.Dense) (policy *mat.Dense, values []float64, err error)
}

// Sampler draws one action for one walker. The base implementation samples
// uniformly; a learned policy can be substituted here.
type Sampler interface {
	Sample(rng *rand.Rand) int
}
