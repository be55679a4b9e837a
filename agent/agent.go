package agent

import (
	"time"

	"fractal/search"
)

// SearchReport carries per-decision diagnostics out of the simulation process.
type SearchReport struct {
	RootValue float64
	Lookahead int
	Duration  time.Duration
}

// Agent picks one action for an observation.
type Agent interface {
	Act(observation []float64) (int, SearchReport, error)
}

type fmcAgent struct {
	searcher  *search.FMC
	lookahead int
	greedy    bool
}

// NewFMCAgent wires a fractal monte carlo searcher into an episode loop. The
// observation is used directly as the walker embedding.
func NewFMCAgent(searcher *search.FMC, lookahead int, greedy bool) Agent {
	if searcher == nil {
		panic("searcher is required")
	}
	if lookahead <= 0 {
		panic("lookahead must be positive")
	}
	return fmcAgent{searcher: searcher, lookahead: lookahead, greedy: greedy}
}

func (a fmcAgent) Act(observation []float64) (int, SearchReport, error) {
	start := time.Now()

	a.searcher.SetState(observation)
	action, err := a.searcher.Simulate(a.lookahead, a.greedy)
	if err != nil {
		return 0, SearchReport{}, err
	}

	return action, SearchReport{
		RootValue: a.searcher.RootValue(),
		Lookahead: a.lookahead,
		Duration:  time.Since(start),
	}, nil
}
