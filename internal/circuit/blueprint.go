package circuit

import (
	"fmt"

	"github.com/gyaneshwarpardhi/circuitflow/internal/config"
	"github.com/gyaneshwarpardhi/circuitflow/internal/hint"
)

// Blueprint is a compiled circuit definition: gate order frozen, hint names
// resolved against a registry. A Blueprint is immutable and instantiated
// once per evaluation run, since a filled graph is not re-evaluated.
type Blueprint struct {
	def *config.CircuitDef
	fns map[string]HintFunc // gate name → resolved hint function
}

// Compile resolves a validated circuit definition against reg. The
// definition must already have passed config.Validate; Compile adds the
// checks that need the registry: the hint name must be registered and the
// gate's args must match the hint's declared arity, so a hint function is
// never invoked with an operand slice it cannot index.
func Compile(def *config.CircuitDef, reg *hint.Registry) (*Blueprint, error) {
	fns := make(map[string]HintFunc)
	for _, g := range def.Gates {
		if g.Op != "hint" {
			continue
		}
		h, err := reg.Get(g.Fn)
		if err != nil {
			return nil, fmt.Errorf("gate %s: %w", g.Name, err)
		}
		if len(g.Args) != h.Arity {
			return nil, fmt.Errorf("gate %s: hint %q takes %d operand(s), got %d", g.Name, g.Fn, h.Arity, len(g.Args))
		}
		fns[g.Name] = HintFunc(h.Fn)
	}
	return &Blueprint{def: def, fns: fns}, nil
}

// NodeCount returns the number of nodes an instance will hold.
func (bp *Blueprint) NodeCount() int {
	return len(bp.def.Inputs) + len(bp.def.Constants) + len(bp.def.Gates)
}

// ConstraintCount returns the number of declared equality constraints.
func (bp *Blueprint) ConstraintCount() int {
	return len(bp.def.Constraints)
}

// Instance is one freshly built graph plus its name↔id mappings.
type Instance struct {
	graph  *Graph
	byName map[string]*Node
	names  map[NodeID]string
}

// Instantiate builds a fresh graph from the blueprint. Instances share
// nothing; filling one leaves every other untouched.
func (bp *Blueprint) Instantiate() *Instance {
	b := NewBuilder()
	inst := &Instance{
		byName: make(map[string]*Node, bp.NodeCount()),
		names:  make(map[NodeID]string, bp.NodeCount()),
	}
	bind := func(name string, n *Node) {
		inst.byName[name] = n
		inst.names[n.ID()] = name
	}

	for _, name := range bp.def.Inputs {
		bind(name, b.Input())
	}
	for _, c := range bp.def.Constants {
		bind(c.Name, b.Constant(c.Value))
	}
	for _, g := range bp.def.Gates {
		switch g.Op {
		case "add":
			bind(g.Name, b.Add(inst.byName[g.A], inst.byName[g.B]))
		case "mul":
			bind(g.Name, b.Mul(inst.byName[g.A], inst.byName[g.B]))
		case "hint":
			operands := make([]*Node, len(g.Args))
			for i, arg := range g.Args {
				operands[i] = inst.byName[arg]
			}
			bind(g.Name, b.Hint(operands, bp.fns[g.Name]))
		}
	}
	for _, c := range bp.def.Constraints {
		b.AssertEqual(inst.byName[c.A], inst.byName[c.B])
	}

	inst.graph = b.Graph()
	return inst
}

// Graph returns the instance's graph.
func (inst *Instance) Graph() *Graph {
	return inst.graph
}

// InputID maps a declared input name to its node id.
func (inst *Instance) InputID(name string) (NodeID, bool) {
	n, ok := inst.byName[name]
	if !ok || !n.IsInput() {
		return 0, false
	}
	return n.ID(), true
}

// Node returns the named node (nil if unknown).
func (inst *Instance) Node(name string) *Node {
	return inst.byName[name]
}

// Name returns the declared name for a node id ("" if none).
func (inst *Instance) Name(id NodeID) string {
	return inst.names[id]
}

// Names returns the id→name mapping (shared, do not mutate).
func (inst *Instance) Names() map[NodeID]string {
	return inst.names
}
