// Package tools wraps the external data providers consulted by the planning
// stages. Tools never return an error: a failed lookup produces a degraded
// Result whose payload has the same shape as a live one.
package tools

import (
	"encoding/json"

	"tripcrew/pkg/metrics"
)

// Result is either a live payload from the provider or a degraded one built
// from fixed fallback data.
type Result[T any] struct {
	payload  T
	err      error
	degraded bool
}

func Live[T any](payload T) Result[T] {
	return Result[T]{payload: payload}
}

func Degraded[T any](payload T, err error) Result[T] {
	return Result[T]{payload: payload, err: err, degraded: true}
}

func (r Result[T]) Payload() T { return r.payload }

func (r Result[T]) IsDegraded() bool { return r.degraded }

// Err is the provider failure behind a degraded result, nil when live.
func (r Result[T]) Err() error { return r.err }

// Match calls exactly one of live or degraded.
func (r Result[T]) Match(live func(T), degraded func(T, error)) {
	if r.degraded {
		degraded(r.payload, r.err)
		return
	}
	live(r.payload)
}

// JSON renders the payload the way it is embedded into a stage prompt.
func (r Result[T]) JSON() string {
	b, err := json.MarshalIndent(r.payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func recordFallback(tool string) {
	metrics.ToolFallbacks.WithLabelValues(tool).Inc()
}
