package circuit

// Constraint asserts that two nodes hold equal final values. It carries no
// computation; validation happens in CheckConstraints after propagation.
type Constraint struct {
	A, B NodeID
}

// Graph holds the nodes, equality constraints, and the reverse-dependency
// index of one circuit. All state is owned by the Builder that created it;
// there is no sharing across graphs and no locking.
type Graph struct {
	nextID      NodeID
	nodes       map[NodeID]*Node
	order       []NodeID // creation order, for deterministic enumeration
	constraints []Constraint
	dependents  map[NodeID][]NodeID // operand id → ids of nodes consuming it
}

// NewGraph allocates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[NodeID]*Node),
		dependents: make(map[NodeID][]NodeID),
	}
}

// newNode allocates the next NodeID, inserts the node, and indexes its
// operands so dependents can be re-enqueued in O(1) during propagation.
func (g *Graph) newNode(op *Op) *Node {
	id := g.nextID
	g.nextID++
	n := &Node{id: id, op: op}
	g.nodes[id] = n
	g.order = append(g.order, id)
	if op != nil {
		for _, operand := range op.Operands {
			g.dependents[operand] = append(g.dependents[operand], id)
		}
	}
	return n
}

// addConstraint appends an equality constraint. Order is preserved for
// deterministic reporting.
func (g *Graph) addConstraint(a, b NodeID) {
	g.constraints = append(g.constraints, Constraint{A: a, B: b})
}

// Node returns a node by ID (nil if not found).
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Dependents returns the ids of nodes whose operation consumes id.
func (g *Graph) Dependents(id NodeID) []NodeID {
	return g.dependents[id]
}

// Constraints returns the recorded equality constraints in declaration order.
func (g *Graph) Constraints() []Constraint {
	return g.constraints
}

// NodeCount returns the total number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}
