package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/gyaneshwarpardhi/circuitflow/internal/circuit"
	"github.com/gyaneshwarpardhi/circuitflow/internal/config"
	"github.com/gyaneshwarpardhi/circuitflow/internal/metrics"
	"github.com/gyaneshwarpardhi/circuitflow/internal/witness"
)

// Sentinel errors returned by EvalSync; callers map them to transport
// semantics (backpressure vs deadline).
var (
	ErrQueueFull = errors.New("evaluation queue full")
	ErrTimeout   = errors.New("evaluation timeout")
)

// EvalResult is the outcome of evaluating one assignment against the
// circuit.
type EvalResult struct {
	AssignmentID  string             `json:"assignment_id"`
	DurationMs    int64              `json:"duration_ms"`
	Values        map[string]uint32  `json:"values"`
	Unresolved    []string           `json:"unresolved,omitempty"`
	UnknownInputs []string           `json:"unknown_inputs,omitempty"`
	Violations    []ViolationReport  `json:"violations,omitempty"`
	Satisfied     bool               `json:"satisfied"`
}

// ViolationReport is one failed equality constraint with node names and the
// compared values (null = never resolved).
type ViolationReport struct {
	NodeA  string  `json:"node_a"`
	ValueA *uint32 `json:"value_a"`
	NodeB  string  `json:"node_b"`
	ValueB *uint32 `json:"value_b"`
}

// Engine evaluates assignments against the current circuit blueprint.
// Every evaluation instantiates a fresh graph, so concurrent workers never
// share mutable circuit state.
type Engine struct {
	blueprint atomic.Pointer[circuit.Blueprint]
	pool      *workerPool[*evalWork]
	conf      *config.EngineConf
}

type evalWork struct {
	asg     *witness.Assignment
	resultC chan *EvalResult
}

// New creates an Engine using conf and starts the worker pool.
func New(ctx context.Context, bp *circuit.Blueprint, conf config.EngineConf) *Engine {
	e := &Engine{conf: &conf}
	e.blueprint.Store(bp)
	e.pool = newWorkerPool[*evalWork](
		ctx,
		conf.EvalWorkers,
		conf.QueueDepth,
		func(ctx context.Context, w *evalWork) {
			res := e.evaluate(w.asg)
			if w.resultC != nil {
				w.resultC <- res
			}
		},
	)
	return e
}

// Blueprint returns the current compiled circuit.
func (e *Engine) Blueprint() *circuit.Blueprint {
	return e.blueprint.Load()
}

// SwapBlueprint atomically replaces the circuit (used on hot-reload).
// In-flight evaluations keep the instance they already built.
func (e *Engine) SwapBlueprint(bp *circuit.Blueprint) {
	e.blueprint.Store(bp)
}

// EvalSync evaluates an assignment synchronously and returns the result.
func (e *Engine) EvalSync(ctx context.Context, asg *witness.Assignment) (*EvalResult, error) {
	resultC := make(chan *EvalResult, 1)
	w := &evalWork{asg: asg, resultC: resultC}

	timeout := time.Duration(e.conf.EvalTimeoutMs) * time.Millisecond
	if !e.pool.Submit(w) {
		metrics.AssignmentsDropped.Inc()
		return nil, fmt.Errorf("%w (capacity %d)", ErrQueueFull, e.conf.QueueDepth)
	}
	metrics.AssignmentsEnqueued.Inc()

	select {
	case res := <-resultC:
		return res, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// EvalAsync enqueues an assignment for background evaluation. Returns false
// if the queue is full.
func (e *Engine) EvalAsync(asg *witness.Assignment) bool {
	w := &evalWork{asg: asg}
	if !e.pool.Submit(w) {
		metrics.AssignmentsDropped.Inc()
		return false
	}
	metrics.AssignmentsEnqueued.Inc()
	return true
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

func (e *Engine) evaluate(asg *witness.Assignment) *EvalResult {
	start := time.Now()
	inst := e.blueprint.Load().Instantiate()

	inputs := make(map[circuit.NodeID]uint32, len(asg.Inputs))
	var unknown []string
	for name, v := range asg.Inputs {
		id, ok := inst.InputID(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		inputs[id] = v
	}
	sort.Strings(unknown)

	resolved := circuit.Fill(inst.Graph(), inputs)
	metrics.NodesResolved.Add(float64(resolved))

	result := &EvalResult{
		AssignmentID:  asg.ID,
		Values:        make(map[string]uint32),
		UnknownInputs: unknown,
	}
	for _, n := range inst.Graph().Nodes() {
		name := inst.Name(n.ID())
		if name == "" {
			continue
		}
		if v, ok := n.Value(); ok {
			result.Values[name] = v
		} else {
			result.Unresolved = append(result.Unresolved, name)
		}
	}

	violations, ok := circuit.CheckConstraints(inst.Graph())
	result.Satisfied = ok
	metrics.ConstraintsChecked.Add(float64(len(inst.Graph().Constraints())))
	metrics.ConstraintViolations.Add(float64(len(violations)))
	for _, v := range violations {
		rep := ViolationReport{
			NodeA:  inst.Name(v.A),
			ValueA: v.ValueA,
			NodeB:  inst.Name(v.B),
			ValueB: v.ValueB,
		}
		result.Violations = append(result.Violations, rep)
		slog.Warn("constraint violated",
			"assignment_id", asg.ID,
			"node_a", rep.NodeA,
			"value_a", formatValue(v.ValueA),
			"node_b", rep.NodeB,
			"value_b", formatValue(v.ValueB),
		)
	}

	result.DurationMs = time.Since(start).Milliseconds()
	metrics.EvalDuration.Observe(float64(result.DurationMs))
	metrics.AssignmentsProcessed.Inc()
	return result
}

func formatValue(v *uint32) string {
	if v == nil {
		return "unresolved"
	}
	return fmt.Sprintf("%d", *v)
}

// Shutdown drains the pool gracefully.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
