package engine

import (
	"testing"

	"fractal/agent"
	"fractal/env"
	"fractal/oracle"
	"fractal/search"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLocalEngineRunsAnEpisode(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	cartpole := env.CartPoleOracle{}
	searcher := search.NewFMC(16, cartpole, cartpole,
		oracle.NewUniformSampler(env.CartPoleActions),
		search.WithRand(rng))
	fmcAgent := agent.NewFMCAgent(searcher, 8, true)

	e := LocalEngine(env.NewCartPole(rng), fmcAgent, 30)
	result, err := e.Run()

	require.NoError(t, err)
	require.GreaterOrEqual(t, result.Steps, 1)
	require.LessOrEqual(t, result.Steps, 30)
	require.Len(t, result.Records, result.Steps)
	require.Equal(t, result.TotalReward, float64(result.Steps),
		"cartpole pays one point per step survived")
}

func TestLocalEngineValidation(t *testing.T) {
	require.Panics(t, func() {
		LocalEngine(nil, nil, 10)
	})
}
