// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch and timer metrics, labelled by runtime name.
// Use RegisterMetrics to register them with a Prometheus registry.
var (
	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunar_dispatches_total",
			Help: "Total number of events dispatched to at least one script handler",
		},
		[]string{"runtime", "family"},
	)

	handlerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunar_handler_errors_total",
			Help: "Total number of script handlers that raised an error",
		},
		[]string{"runtime"},
	)

	stackImbalances = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunar_stack_imbalances_total",
			Help: "Total number of dispatches that left the Lua stack at the wrong depth",
		},
		[]string{"runtime"},
	)

	timedEventsFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunar_timed_events_fired_total",
			Help: "Total number of timed event callbacks run",
		},
		[]string{"runtime"},
	)

	pendingTimedEvents = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lunar_timed_events_pending",
			Help: "Timed events queued across all processors of a runtime",
		},
		[]string{"runtime"},
	)
)

// RegisterMetrics registers the engine metrics with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(dispatches)
	reg.MustRegister(handlerErrors)
	reg.MustRegister(stackImbalances)
	reg.MustRegister(timedEventsFired)
	reg.MustRegister(pendingTimedEvents)
}
