package circuit

// Builder is the construction API for a single graph. Every constructor
// returns the created node, so callers compose further operations from
// handles and never fabricate identifiers; because operands are always
// previously returned handles, the dependency relation is acyclic by
// construction. No constructor can fail.
type Builder struct {
	g *Graph
}

// NewBuilder creates a Builder owning a fresh empty graph.
func NewBuilder() *Builder {
	return &Builder{g: NewGraph()}
}

// Graph returns the graph under construction.
func (b *Builder) Graph() *Graph {
	return b.g
}

// Input creates a node with no operation. Its value must be supplied to
// Fill before anything downstream of it can resolve.
func (b *Builder) Input() *Node {
	return b.g.newNode(nil)
}

// Constant creates a node with a fixed value, resolved during propagation.
func (b *Builder) Constant(v uint32) *Node {
	return b.g.newNode(&Op{Kind: OpConst, Value: v})
}

// Add creates a node evaluating to x + y with wraparound.
func (b *Builder) Add(x, y *Node) *Node {
	return b.g.newNode(&Op{Kind: OpAdd, Operands: []NodeID{x.id, y.id}})
}

// Mul creates a node evaluating to x * y with wraparound.
func (b *Builder) Mul(x, y *Node) *Node {
	return b.g.newNode(&Op{Kind: OpMul, Operands: []NodeID{x.id, y.id}})
}

// Hint creates a node whose value is fn applied to the operands' resolved
// values, in the given order. fn is never invoked at construction time.
func (b *Builder) Hint(operands []*Node, fn HintFunc) *Node {
	ids := make([]NodeID, len(operands))
	for i, n := range operands {
		ids[i] = n.id
	}
	return b.g.newNode(&Op{Kind: OpHint, Operands: ids, Fn: fn})
}

// AssertEqual records an equality constraint between x and y, validated
// after propagation by CheckConstraints.
func (b *Builder) AssertEqual(x, y *Node) {
	b.g.addConstraint(x.id, y.id)
}
