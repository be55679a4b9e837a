package telemetry

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type logSink struct {
	logger zerolog.Logger
}

// NewLogSink emits one structured log line per iteration via zerolog.
func NewLogSink() Sink {
	return logSink{logger: log.Logger}
}

func (s logSink) Emit(iteration Iteration) {
	s.logger.Info().
		Int("iteration", iteration.Index).
		Int("cloned", iteration.NumCloned).
		Float64("virtual_reward_mean", iteration.VirtualRewards.Mean).
		Float64("predicted_value_mean", iteration.PredictedValues.Mean).
		Float64("distance_mean", iteration.Distances.Mean).
		Float64("reward_mean", iteration.Rewards.Mean).
		Float64("value_sum_mean", iteration.ValueSums.Mean).
		Float64("average_value_mean", iteration.AverageValues.Mean).
		Float64("visit_mean", iteration.VisitCounts.Mean).
		Float64("clone_receives_max", iteration.CloneReceives.Max).
		Msg("fmc iteration")
}
