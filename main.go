package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fractal/agent"
	"fractal/engine"
	"fractal/env"
	"fractal/oracle"
	"fractal/search"
	"fractal/telemetry"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type config struct {
	walkers   int
	lookahead int
	balance   float64
	gamma     float64
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	runLookaheadExperiment()
}

func runLookaheadExperiment() {
	numEpisodes := 10
	maxSteps := 200
	configs := []config{
		{walkers: 16, lookahead: 10, balance: 1, gamma: 0.99},
		{walkers: 64, lookahead: 10, balance: 1, gamma: 0.99},
		{walkers: 64, lookahead: 25, balance: 1, gamma: 0.99},
	}

	sink, err := telemetry.NewWriter(filepath.Join("experiments", "cartpole"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create telemetry writer")
	}
	defer sink.Close()

	fmt.Printf("Running lookahead experiment...\n")
	for _, cfg := range configs {
		fmt.Printf("Agent %+v:\n", cfg)
		total := 0.0
		for i := 0; i < numEpisodes; i++ {
			result, err := runEpisode(cfg, maxSteps, uint64(i+1), sink)
			if err != nil {
				log.Fatal().Err(err).Msg("episode failed")
			}
			total += result.TotalReward
			fmt.Printf("Episode %d: %d steps, total reward %.0f\n", i+1, result.Steps, result.TotalReward)
		}
		fmt.Printf("Average reward over %d episodes: %.1f\n", numEpisodes, total/float64(numEpisodes))
	}
	fmt.Printf("Finished lookahead experiment.\n")
}

func runEpisode(cfg config, maxSteps int, seed uint64, sink telemetry.Sink) (engine.EpisodeResult, error) {
	rng := rand.New(rand.NewSource(seed))

	cartpole := env.CartPoleOracle{}
	searcher := search.NewFMC(cfg.walkers, cartpole, cartpole,
		oracle.NewUniformSampler(env.CartPoleActions),
		search.WithBalance(cfg.balance),
		search.WithGamma(cfg.gamma),
		search.WithRand(rng),
		search.WithTelemetry(sink),
	)
	fmcAgent := agent.NewFMCAgent(searcher, cfg.lookahead, true)

	e := engine.LocalEngine(env.NewCartPole(rng), fmcAgent, maxSteps)
	return e.Run()
}
