package engine

import (
	"context"

	"penguins/experiments/metrics"
)

type Engine interface {
	// Run plays one game till neither team can move or the turn limit is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
