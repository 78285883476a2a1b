// Package hint holds the named hint functions a circuit definition may
// reference. A hint function is an opaque, pure, total mapping from resolved
// operand values to one output value; the evaluator never verifies its
// output, so circuits are expected to pin it down with an equality
// constraint against native gates.
package hint

import (
	"fmt"
	"sync"
)

// Func is the signature every hint function implements.
type Func func(vals []uint32) uint32

// Hint pairs a function with the operand count it expects. The function is
// only ever invoked with exactly Arity values, enforced at circuit compile
// time, so implementations may index vals without bounds checks.
type Hint struct {
	Arity int
	Fn    Func
}

// Registry maps hint names to their functions.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu    sync.RWMutex
	hints map[string]Hint
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{hints: make(map[string]Hint)}
}

// Register adds a function taking arity operands. Panics on duplicate name
// or non-positive arity to surface misconfiguration early.
func (r *Registry) Register(name string, arity int, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if arity < 1 {
		panic(fmt.Sprintf("hint registry: %q registered with arity %d", name, arity))
	}
	if _, exists := r.hints[name]; exists {
		panic(fmt.Sprintf("hint registry: duplicate name %q", name))
	}
	r.hints[name] = Hint{Arity: arity, Fn: fn}
}

// Get returns the hint registered under name.
func (r *Registry) Get(name string) (Hint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hints[name]
	if !ok {
		return Hint{}, fmt.Errorf("no hint function registered under %q", name)
	}
	return h, nil
}

// Names returns all registered hint names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.hints))
	for k := range r.hints {
		out = append(out, k)
	}
	return out
}
