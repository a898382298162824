package fsmgine

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zeebo/xxh3"
)

// Metric outcome constants.
const (
	outcomeFired   = "fired"
	outcomeNoMatch = "no_match"
	outcomeError   = "error"
)

// Metric definitions. The machine label is the machine name when set,
// otherwise a short hash of the instance ID to keep cardinality bounded.
var (
	processTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsmgine_process_total",
		Help: "Total Process calls by machine and outcome (fired, no_match, or error)",
	}, []string{"machine", "outcome"})

	processDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fsmgine_process_duration_seconds",
		Help:    "Duration of Process calls by machine and outcome",
		Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"machine", "outcome"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsmgine_transitions_total",
		Help: "Total fired transitions by machine, source, and target state",
	}, []string{"machine", "from_state", "to_state"})

	selfTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsmgine_self_transitions_total",
		Help: "Total fired self-loop transitions by machine and state",
	}, []string{"machine", "state"})
)

// machineLabel derives the metric label for one machine: the configured name,
// or a short non-cryptographic hash of the instance ID.
func machineLabel(name, id string) string {
	if name != "" {
		return name
	}

	if id == "" {
		return "unknown"
	}

	return fmt.Sprintf("%016x", xxh3.HashString(id))[:8]
}
