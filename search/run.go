package search

import "gonum.org/v1/gonum/mat"

// run owns all per-walker bookkeeping for one Simulate call. Everything here
// is created at the start of the invocation and discarded when it returns.
type run struct {
	k         int
	iteration int

	actions     []int
	rootActions []int // iteration-0 actions, rewritten by cloning

	rewardBuffer  *mat.Dense // one column per iteration, cloned row-wise
	valueSums     []float64
	visitCounts   []int
	cloneReceives []int

	// Recomputed in full every iteration; no cross-iteration memory.
	rewards        []float64
	values         []float64
	partners       []int
	distances      []float64
	virtualRewards []float64
	probabilities  []float64
	mask           []bool

	rootValueSum float64
	rootVisits   int
}

func newRun(numWalkers, k int) *run {
	return &run{
		k:              k,
		actions:        make([]int, numWalkers),
		rootActions:    make([]int, numWalkers),
		rewardBuffer:   mat.NewDense(numWalkers, k, nil),
		valueSums:      make([]float64, numWalkers),
		visitCounts:    make([]int, numWalkers),
		cloneReceives:  make([]int, numWalkers),
		rewards:        make([]float64, numWalkers),
		values:         make([]float64, numWalkers),
		partners:       make([]int, numWalkers),
		distances:      make([]float64, numWalkers),
		virtualRewards: make([]float64, numWalkers),
		probabilities:  make([]float64, numWalkers),
		mask:           make([]bool, numWalkers),
	}
}
