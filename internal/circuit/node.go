package circuit

import (
	"fmt"
	"strings"
)

// NodeID identifies a node within a single graph. IDs are assigned in
// creation order, are never reused, and are only meaningful inside the
// graph that issued them.
type NodeID int

func (id NodeID) String() string {
	return fmt.Sprintf("n%d", int(id))
}

// OpKind discriminates the four kinds of derived nodes.
type OpKind string

const (
	OpConst OpKind = "const"
	OpAdd   OpKind = "add"
	OpMul   OpKind = "mul"
	OpHint  OpKind = "hint"
)

// HintFunc maps the fully resolved operand values, in declared order, to
// one output value. It must be pure and total: the evaluator may invoke it
// at any point of its traversal and never verifies the result. Correctness
// of a hint is established by the caller, typically via AssertEqual against
// a native add/mul computation.
type HintFunc func(vals []uint32) uint32

// Op describes how a derived node's value is computed.
type Op struct {
	Kind     OpKind
	Value    uint32   // OpConst only
	Operands []NodeID // OpAdd/OpMul: exactly two; OpHint: one or more
	Fn       HintFunc // OpHint only
}

// Node is one vertex of the computation graph. A node with a nil op is an
// input: its value must be supplied externally before propagation can reach
// anything downstream of it.
type Node struct {
	id  NodeID
	op  *Op
	val uint32
	set bool
}

func (n *Node) ID() NodeID { return n.id }

// Op returns the node's operation, or nil for input nodes.
func (n *Node) Op() *Op { return n.op }

func (n *Node) IsInput() bool { return n.op == nil }

// Value returns the node's value and whether it has been resolved yet.
func (n *Node) Value() (uint32, bool) { return n.val, n.set }

// setValue stores a resolved value. Values are immutable for the rest of
// the run; only input assignment in Fill may overwrite an unset slot.
func (n *Node) setValue(v uint32) {
	n.val = v
	n.set = true
}

// Label renders the node's operation for export and API listings,
// e.g. "input", "const(8)", "add(n0, n1)", "hint(n2)".
func (n *Node) Label() string {
	if n.op == nil {
		return "input"
	}
	switch n.op.Kind {
	case OpConst:
		return fmt.Sprintf("const(%d)", n.op.Value)
	case OpHint:
		return fmt.Sprintf("hint(%s)", joinIDs(n.op.Operands))
	default:
		return fmt.Sprintf("%s(%s)", n.op.Kind, joinIDs(n.op.Operands))
	}
}

func joinIDs(ids []NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
