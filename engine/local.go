package engine

import (
	"fmt"

	"fractal/agent"
	"fractal/env"

	"github.com/rs/zerolog/log"
)

type StepRecord struct {
	Step   int
	Action int
	Reward float64
	agent.SearchReport
}

type EpisodeResult struct {
	Steps       int
	TotalReward float64
	Records     []StepRecord
}

// Engine drives one environment with one agent.
type Engine struct {
	env      env.Environment
	agent    agent.Agent
	maxSteps int
}

func LocalEngine(environment env.Environment, a agent.Agent, maxSteps int) *Engine {
	if environment == nil || a == nil {
		panic("engine needs an environment and an agent")
	}
	if maxSteps <= 0 {
		panic("step limit must be positive")
	}
	return &Engine{env: environment, agent: a, maxSteps: maxSteps}
}

// Run plays one episode until termination or the step limit.
func (e *Engine) Run() (EpisodeResult, error) {
	observation := e.env.Reset()
	result := EpisodeResult{}

	for step := 1; step <= e.maxSteps; step++ {
		action, report, err := e.agent.Act(observation)
		if err != nil {
			return result, fmt.Errorf("step %d: %w", step, err)
		}

		next, reward, done := e.env.Step(action)
		result.Steps = step
		result.TotalReward += reward
		result.Records = append(result.Records, StepRecord{
			Step:         step,
			Action:       action,
			Reward:       reward,
			SearchReport: report,
		})

		log.Debug().
			Int("step", step).
			Int("action", action).
			Float64("reward", reward).
			Float64("root_value", report.RootValue).
			Msg("episode step")

		if done {
			break
		}
		observation = next
	}

	return result, nil
}
