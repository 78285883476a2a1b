package circuit

// Fill assigns the given input values and propagates them through the graph
// with a worklist fixpoint: every node whose operands are fully resolved is
// computed exactly once, and each newly computed value re-enqueues its
// dependents. Processing order does not affect the result (the fixpoint is
// confluent). Nodes whose dependency chain is never fully supplied simply
// keep an absent value; Fill reports no errors.
//
// Add and Mul use fixed-width uint32 arithmetic with silent wraparound.
// Hint functions are invoked only once all operands hold values; a panic
// inside a hint is not recovered.
//
// Returns the number of nodes resolved during this pass (assigned inputs
// included).
func Fill(g *Graph, inputs map[NodeID]uint32) int {
	resolved := 0
	for id, v := range inputs {
		if n := g.Node(id); n != nil {
			n.setValue(v)
			resolved++
		}
	}

	worklist := make([]NodeID, len(g.order))
	copy(worklist, g.order)
	visited := make(map[NodeID]struct{}, len(g.order))

	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, done := visited[id]; done {
			continue
		}
		n := g.Node(id)
		if n == nil {
			continue
		}
		if _, ok := n.Value(); ok {
			visited[id] = struct{}{}
			continue
		}
		v, ok := tryCompute(g, n)
		if !ok {
			// Not ready. Deliberately left out of visited so that a
			// dependency resolving later re-enqueues and retries it.
			continue
		}
		n.setValue(v)
		resolved++
		visited[id] = struct{}{}
		worklist = append(worklist, g.Dependents(id)...)
	}
	return resolved
}

// tryCompute attempts to derive n's value from its operation. Returns false
// when n is an unassigned input or some operand is still unresolved.
func tryCompute(g *Graph, n *Node) (uint32, bool) {
	op := n.Op()
	if op == nil {
		return 0, false
	}
	switch op.Kind {
	case OpConst:
		return op.Value, true
	case OpAdd, OpMul:
		x, okx := g.Node(op.Operands[0]).Value()
		y, oky := g.Node(op.Operands[1]).Value()
		if !okx || !oky {
			return 0, false
		}
		if op.Kind == OpAdd {
			return x + y, true // wraps mod 2^32
		}
		return x * y, true // wraps mod 2^32
	case OpHint:
		vals := make([]uint32, 0, len(op.Operands))
		for _, operand := range op.Operands {
			v, ok := g.Node(operand).Value()
			if !ok {
				return 0, false
			}
			vals = append(vals, v)
		}
		return op.Fn(vals), true
	}
	return 0, false
}
