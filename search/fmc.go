package search

import (
	"fmt"
	"math"
	"time"

	"fractal/oracle"
	"fractal/telemetry"
	"fractal/utils"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Default hyperparameters
const (
	DefaultBalance = 1.0  // Equal weight on value and diversity
	DefaultGamma   = 0.99 // Discount factor for backpropagated returns
)

type Option func(f *FMC)

// WithBalance sets the exponent on the relativized value term of the virtual
// reward. Above 1 favors exploitation, below 1 favors exploration.
func WithBalance(balance float64) Option {
	return func(f *FMC) {
		f.balance = balance
	}
}

func WithGamma(gamma float64) Option {
	return func(f *FMC) {
		if gamma < 0 || gamma > 1 {
			panic("gamma must be in [0, 1]")
		}
		f.gamma = gamma
	}
}

// WithRand supplies the random source used for partner assignment, the clone
// threshold and action sampling. Seed it for reproducible searches.
func WithRand(rng *rand.Rand) Option {
	return func(f *FMC) {
		if rng != nil {
			f.rng = rng
		}
	}
}

func WithTelemetry(sink telemetry.Sink) Option {
	return func(f *FMC) {
		if sink != nil {
			f.sink = sink
		}
	}
}

// FMC runs a fractal monte carlo search: a population of walkers explores the
// state space of a dynamics model in lockstep, and walkers probabilistically
// clone onto more promising partners instead of maintaining an explicit tree.
// The walker states live in one dense (numWalkers x embeddingSize) matrix, so
// every step of the algorithm is a whole-population operation.
//
// An FMC instance is not safe for concurrent Simulate calls; every invocation
// owns the walker buffers exclusively.
type FMC struct {
	numWalkers int
	dynamics   oracle.Dynamics
	prediction oracle.Prediction
	sampler    oracle.Sampler

	balance float64
	gamma   float64
	rng     *rand.Rand
	sink    telemetry.Sink

	state         *mat.Dense
	embeddingSize int

	rootValue    float64
	hasRootValue bool
}

func NewFMC(numWalkers int, dynamics oracle.Dynamics, prediction oracle.Prediction, sampler oracle.Sampler, options ...Option) *FMC {
	if numWalkers <= 0 {
		panic("number of walkers must be positive")
	}
	if dynamics == nil || prediction == nil || sampler == nil {
		panic("dynamics, prediction and sampler are all required")
	}

	f := &FMC{ // Default values
		numWalkers: numWalkers,
		dynamics:   dynamics,
		prediction: prediction,
		sampler:    sampler,
		balance:    DefaultBalance,
		gamma:      DefaultGamma,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		sink:       telemetry.NewDummySink(),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// SetState broadcasts one embedding to every walker. The embedding length
// fixes the state dimension for the following Simulate call.
func (f *FMC) SetState(embedding []float64) {
	if len(embedding) == 0 {
		panic("embedding must not be empty")
	}
	f.embeddingSize = len(embedding)
	f.state = mat.NewDense(f.numWalkers, f.embeddingSize, nil)
	for i := 0; i < f.numWalkers; i++ {
		f.state.SetRow(i, embedding)
	}
	f.hasRootValue = false
}

// Simulate runs k iterations of perturb, clone-decide, backpropagate and
// clone-execute, then reduces the population to a single action. With greedy
// set, the action comes from the walker with the highest average flushed
// return; otherwise from the walker that received the most clones. Either way
// the result is one of the actions sampled at iteration 0, propagated through
// the cloning lineage.
func (f *FMC) Simulate(k int, greedy bool) (int, error) {
	if k <= 0 {
		panic("Simulate requires k > 0")
	}
	if f.state == nil {
		return 0, fmt.Errorf("no walker states: call SetState before Simulate")
	}

	f.hasRootValue = false
	r := newRun(f.numWalkers, k)

	for r.iteration = 0; r.iteration < k; r.iteration++ {
		if err := f.perturb(r); err != nil {
			return 0, fmt.Errorf("iteration %d: %w", r.iteration, err)
		}
		f.decideClones(r)
		f.backpropagate(r)
		f.emit(r)
		f.executeClones(r)
	}

	// The final iteration flushes every walker, so rootVisits is never zero.
	f.rootValue = r.rootValueSum / float64(r.rootVisits)
	f.hasRootValue = true

	if greedy {
		return r.rootActions[bestAverageValue(r)], nil
	}
	return r.rootActions[utils.ArgMax(r.cloneReceives)], nil
}

// RootValue reports the average discounted return flushed across the whole
// run, the closest analogue to a tree-search root value. Only meaningful
// after a completed Simulate call.
func (f *FMC) RootValue() float64 {
	if !f.hasRootValue {
		panic("root value is only available after a completed Simulate call")
	}
	return f.rootValue
}

// NumWalkers returns the fixed population size.
func (f *FMC) NumWalkers() int {
	return f.numWalkers
}

// State exposes the walker state matrix, primarily for diagnostics.
func (f *FMC) State() mat.Matrix {
	return f.state
}

func bestAverageValue(r *run) int {
	averages := make([]float64, len(r.valueSums))
	for i, sum := range r.valueSums {
		if r.visitCounts[i] == 0 {
			// Never flushed: exclude from selection rather than divide by zero.
			averages[i] = math.Inf(-1)
			continue
		}
		averages[i] = sum / float64(r.visitCounts[i])
	}
	return utils.ArgMax(averages)
}

func (f *FMC) emit(r *run) {
	numCloned := 0
	for _, cloned := range r.mask {
		if cloned {
			numCloned++
		}
	}

	f.sink.Emit(telemetry.Iteration{
		Index:           r.iteration,
		NumCloned:       numCloned,
		VisitCounts:     telemetry.SummarizeInts(r.visitCounts),
		ValueSums:       telemetry.Summarize(r.valueSums),
		AverageValues:   summarizeAverages(r),
		CloneReceives:   telemetry.SummarizeInts(r.cloneReceives),
		VirtualRewards:  telemetry.Summarize(r.virtualRewards),
		PredictedValues: telemetry.Summarize(r.values),
		Distances:       telemetry.Summarize(r.distances),
		Rewards:         telemetry.Summarize(r.rewards),
	})
}

func summarizeAverages(r *run) telemetry.Summary {
	averages := make([]float64, 0, len(r.valueSums))
	for i, sum := range r.valueSums {
		if r.visitCounts[i] > 0 {
			averages = append(averages, sum/float64(r.visitCounts[i]))
		}
	}
	return telemetry.Summarize(averages)
}
