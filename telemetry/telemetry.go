// Package telemetry publishes iteration-level search statistics to an
// observer. Sinks are strictly one-way: nothing here feeds back into the
// algorithm, and running without a sink changes no outputs.
package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Mean float64
	Min  float64
	Max  float64
}

func Summarize(v []float64) Summary {
	if len(v) == 0 {
		return Summary{}
	}
	return Summary{
		Mean: stat.Mean(v, nil),
		Min:  floats.Min(v),
		Max:  floats.Max(v),
	}
}

func SummarizeInts(v []int) Summary {
	converted := make([]float64, len(v))
	for i, x := range v {
		converted[i] = float64(x)
	}
	return Summarize(converted)
}

// Iteration is one search iteration's worth of population statistics,
// captured after backpropagation and before cloning executes.
type Iteration struct {
	Index           int
	NumCloned       int
	VisitCounts     Summary
	ValueSums       Summary
	AverageValues   Summary // over walkers with at least one flush
	CloneReceives   Summary
	VirtualRewards  Summary
	PredictedValues Summary
	Distances       Summary
	Rewards         Summary
}

type Sink interface {
	Emit(iteration Iteration)
}

type dummySink struct{}

func NewDummySink() Sink {
	return dummySink{}
}

func (dummySink) Emit(Iteration) {}
