package circuit

// Violation records one failed equality constraint. ValueA/ValueB are nil
// when the corresponding node never resolved.
type Violation struct {
	A, B           NodeID
	ValueA, ValueB *uint32
}

// CheckConstraints compares the final values of every constrained pair, in
// declaration order, and returns the violations plus an overall verdict
// (true iff every constraint holds).
//
// A constraint involving an unresolved node always fails, including the
// unresolved-vs-unresolved case: a constraint claims two known values agree,
// and an under-supplied witness must not satisfy it vacuously.
func CheckConstraints(g *Graph) ([]Violation, bool) {
	var violations []Violation
	for _, c := range g.Constraints() {
		va, oka := g.Node(c.A).Value()
		vb, okb := g.Node(c.B).Value()
		if oka && okb && va == vb {
			continue
		}
		v := Violation{A: c.A, B: c.B}
		if oka {
			v.ValueA = &va
		}
		if okb {
			v.ValueB = &vb
		}
		violations = append(violations, v)
	}
	return violations, len(violations) == 0
}
