// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripcrew_tool_fallback_total",
			Help: "Number of times an external data tool returned its fallback payload",
		},
		[]string{"tool"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripcrew_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"stage", "outcome"},
	)

	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripcrew_plans_total",
			Help: "Plans produced by the planner, by outcome",
		},
		[]string{"outcome"},
	)
)
