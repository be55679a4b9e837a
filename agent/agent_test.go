package agent

import (
	"math"
	"testing"

	"fractal/env"
	"fractal/oracle"
	"fractal/search"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFMCAgent(t *testing.T) {
	t.Run("returns an in-range action with diagnostics", func(t *testing.T) {
		cartpole := env.CartPoleOracle{}
		searcher := search.NewFMC(16, cartpole, cartpole,
			oracle.NewUniformSampler(env.CartPoleActions),
			search.WithRand(rand.New(rand.NewSource(5))))
		a := NewFMCAgent(searcher, 10, true)

		pole := env.NewCartPole(rand.New(rand.NewSource(5)))
		observation := pole.Reset()

		action, report, err := a.Act(observation)

		require.NoError(t, err)
		require.Contains(t, []int{0, 1}, action)
		require.Equal(t, 10, report.Lookahead)
		require.False(t, math.IsNaN(report.RootValue))
	})

	t.Run("rejects a missing searcher or lookahead", func(t *testing.T) {
		require.Panics(t, func() {
			NewFMCAgent(nil, 10, true)
		})

		cartpole := env.CartPoleOracle{}
		searcher := search.NewFMC(4, cartpole, cartpole, oracle.NewUniformSampler(env.CartPoleActions))
		require.Panics(t, func() {
			NewFMCAgent(searcher, 0, true)
		})
	})
}
