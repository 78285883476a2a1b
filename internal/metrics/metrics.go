package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuitflow_assignments_enqueued_total",
		Help: "Total number of assignments placed on the evaluation queue.",
	})

	AssignmentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuitflow_assignments_processed_total",
		Help: "Total number of assignments fully evaluated.",
	})

	AssignmentsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuitflow_assignments_dropped_total",
		Help: "Total number of assignments rejected due to a full queue.",
	})

	NodesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuitflow_nodes_resolved_total",
		Help: "Total number of node values resolved during propagation.",
	})

	ConstraintsChecked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuitflow_constraints_checked_total",
		Help: "Total number of equality constraints checked.",
	})

	ConstraintViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuitflow_constraint_violations_total",
		Help: "Total number of equality constraints that failed.",
	})

	EvalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "circuitflow_eval_duration_ms",
		Help:    "End-to-end assignment evaluation latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "circuitflow_queue_utilization_ratio",
		Help: "Current evaluation queue utilization (0–1).",
	})
)
