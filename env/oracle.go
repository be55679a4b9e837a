package env

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// CartPoleOracle is a ground-truth stand-in for a learned model: dynamics
// step the real physics on every walker row, and prediction scores each state
// by its margin to the failure bounds. Walker embeddings are the raw
// [x, xDot, theta, thetaDot] states.
type CartPoleOracle struct{}

func (CartPoleOracle) Step(states *mat.Dense, actions []int) (*mat.Dense, []float64, error) {
	n, d := states.Dims()
	if d != CartPoleEmbedding {
		return nil, nil, fmt.Errorf("cartpole states have %d dimensions, got %d", CartPoleEmbedding, d)
	}
	if len(actions) != n {
		return nil, nil, fmt.Errorf("got %d actions for %d walkers", len(actions), n)
	}

	next := mat.NewDense(n, d, nil)
	rewards := make([]float64, n)
	for i := 0; i < n; i++ {
		row := states.RawRowView(i)
		x, xDot, theta, thetaDot := stepPhysics(row[0], row[1], row[2], row[3], actions[i])
		next.SetRow(i, []float64{x, xDot, theta, thetaDot})
		if !failed(x, theta) {
			rewards[i] = 1
		}
	}
	return next, rewards, nil
}

func (CartPoleOracle) Predict(states *mat.Dense) (*mat.Dense, []float64, error) {
	n, d := states.Dims()
	if d != CartPoleEmbedding {
		return nil, nil, fmt.Errorf("cartpole states have %d dimensions, got %d", CartPoleEmbedding, d)
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		row := states.RawRowView(i)
		values[i] = margin(row[0], xLimit) + margin(row[2], thetaLimit)
	}
	return nil, values, nil
}

// margin scores how far a coordinate sits from its failure bound, 1 at center
// and 0 at or beyond the bound.
func margin(v, limit float64) float64 {
	return math.Max(0, 1-math.Abs(v)/limit)
}
