package circuit_test

import (
	"math"
	"testing"

	"github.com/gyaneshwarpardhi/circuitflow/internal/circuit"
)

func mustValue(t *testing.T, n *circuit.Node) uint32 {
	t.Helper()
	v, ok := n.Value()
	if !ok {
		t.Fatalf("node %s has no value", n.ID())
	}
	return v
}

func TestFill_Polynomial(t *testing.T) {
	// f(x) = x^2 + x + 8 with x = 3.
	b := circuit.NewBuilder()
	x := b.Input()
	xSq := b.Mul(x, x)
	eight := b.Constant(8)
	plusX := b.Add(xSq, x)
	y := b.Add(plusX, eight)

	circuit.Fill(b.Graph(), map[circuit.NodeID]uint32{x.ID(): 3})

	if got := mustValue(t, xSq); got != 9 {
		t.Errorf("x^2 = %d, want 9", got)
	}
	if got := mustValue(t, plusX); got != 12 {
		t.Errorf("x^2 + x = %d, want 12", got)
	}
	if got := mustValue(t, y); got != 20 {
		t.Errorf("y = %d, want 20", got)
	}
}

func TestFill_Determinism(t *testing.T) {
	build := func() (g *circuit.Graph, x, y *circuit.Node) {
		b := circuit.NewBuilder()
		x = b.Input()
		xSq := b.Mul(x, x)
		three := b.Constant(3)
		plusX := b.Add(xSq, x)
		y = b.Add(plusX, three)
		return b.Graph(), x, y
	}

	g1, x1, y1 := build()
	g2, x2, y2 := build()
	circuit.Fill(g1, map[circuit.NodeID]uint32{x1.ID(): 11})
	circuit.Fill(g2, map[circuit.NodeID]uint32{x2.ID(): 11})

	v1 := mustValue(t, y1)
	v2 := mustValue(t, y2)
	if v1 != v2 {
		t.Errorf("repeated evaluation diverged: %d vs %d", v1, v2)
	}
	if v1 != 11*11+11+3 {
		t.Errorf("y = %d, want %d", v1, 11*11+11+3)
	}
	nodes1, nodes2 := g1.Nodes(), g2.Nodes()
	for i := range nodes1 {
		a, oka := nodes1[i].Value()
		b, okb := nodes2[i].Value()
		if oka != okb || a != b {
			t.Errorf("node %s diverged: (%d,%v) vs (%d,%v)", nodes1[i].ID(), a, oka, b, okb)
		}
	}
}

func TestFill_WraparoundArithmetic(t *testing.T) {
	b := circuit.NewBuilder()
	big := b.Constant(1 << 31)
	two := b.Constant(2)
	product := b.Mul(big, two)
	maxv := b.Constant(math.MaxUint32)
	one := b.Constant(1)
	sum := b.Add(maxv, one)

	circuit.Fill(b.Graph(), nil)

	if got := mustValue(t, product); got != 0 {
		t.Errorf("2^31 * 2 = %d, want 0 (wraparound)", got)
	}
	if got := mustValue(t, sum); got != 0 {
		t.Errorf("0xFFFFFFFF + 1 = %d, want 0 (wraparound)", got)
	}
}

func TestFill_HintDivision(t *testing.T) {
	// b = a + 1, c = b / 8 via hint, constraint c*8 == b.
	// With a = 7, b = 8: the hint is exact and the constraint holds.
	build := func() (*circuit.Builder, *circuit.Node) {
		bd := circuit.NewBuilder()
		a := bd.Input()
		one := bd.Constant(1)
		sum := bd.Add(a, one)
		quot := bd.Hint([]*circuit.Node{sum}, func(vals []uint32) uint32 {
			return vals[0] / 8
		})
		eight := bd.Constant(8)
		back := bd.Mul(quot, eight)
		bd.AssertEqual(sum, back)
		return bd, a
	}

	bd, a := build()
	circuit.Fill(bd.Graph(), map[circuit.NodeID]uint32{a.ID(): 7})
	if violations, ok := circuit.CheckConstraints(bd.Graph()); !ok {
		t.Errorf("constraint should hold for b=8, got violations %v", violations)
	}

	// With a = 6, b = 7: integer division loses the remainder and the
	// constraint exposes the lie (0*8 != 7).
	bd, a = build()
	circuit.Fill(bd.Graph(), map[circuit.NodeID]uint32{a.ID(): 6})
	violations, ok := circuit.CheckConstraints(bd.Graph())
	if ok {
		t.Fatal("constraint should fail for b=7")
	}
	if len(violations) != 1 {
		t.Fatalf("want 1 violation, got %d", len(violations))
	}
	v := violations[0]
	if v.ValueA == nil || *v.ValueA != 7 {
		t.Errorf("value_a = %v, want 7", v.ValueA)
	}
	if v.ValueB == nil || *v.ValueB != 0 {
		t.Errorf("value_b = %v, want 0", v.ValueB)
	}
}

func TestFill_HintSqrtRoundTrip(t *testing.T) {
	b := circuit.NewBuilder()
	x := b.Input()
	seven := b.Constant(7)
	s := b.Add(x, seven)
	r := b.Hint([]*circuit.Node{s}, func(vals []uint32) uint32 {
		return uint32(math.Sqrt(float64(vals[0])))
	})
	check := b.Mul(r, r)
	b.AssertEqual(check, s)

	circuit.Fill(b.Graph(), map[circuit.NodeID]uint32{x.ID(): 2})

	if got := mustValue(t, s); got != 9 {
		t.Errorf("s = %d, want 9", got)
	}
	if got := mustValue(t, r); got != 3 {
		t.Errorf("r = %d, want 3", got)
	}
	if got := mustValue(t, check); got != 9 {
		t.Errorf("check = %d, want 9", got)
	}
	if _, ok := circuit.CheckConstraints(b.Graph()); !ok {
		t.Error("sqrt round trip constraint should hold")
	}
}

func TestFill_UnresolvedPropagation(t *testing.T) {
	b := circuit.NewBuilder()
	x := b.Input()
	one := b.Constant(1)
	y := b.Add(x, one)

	// x never assigned: y must stay absent, the constant still resolves.
	circuit.Fill(b.Graph(), map[circuit.NodeID]uint32{})

	if _, ok := x.Value(); ok {
		t.Error("unassigned input should have no value")
	}
	if _, ok := y.Value(); ok {
		t.Error("node downstream of an unassigned input should have no value")
	}
	if got := mustValue(t, one); got != 1 {
		t.Errorf("constant = %d, want 1", got)
	}
}

func TestCheckConstraints_UnresolvedComparisonsFail(t *testing.T) {
	b := circuit.NewBuilder()
	x := b.Input()
	y := b.Input()
	seven := b.Constant(7)
	b.AssertEqual(x, y)     // unresolved vs unresolved
	b.AssertEqual(x, seven) // unresolved vs present

	circuit.Fill(b.Graph(), nil)

	violations, ok := circuit.CheckConstraints(b.Graph())
	if ok {
		t.Fatal("constraints over unresolved nodes must not pass")
	}
	if len(violations) != 2 {
		t.Fatalf("want 2 violations, got %d", len(violations))
	}
	if violations[0].ValueA != nil || violations[0].ValueB != nil {
		t.Error("unresolved vs unresolved should report both values as absent")
	}
	if violations[1].ValueB == nil || *violations[1].ValueB != 7 {
		t.Errorf("unresolved vs present should carry the present value, got %v", violations[1].ValueB)
	}
}

func TestFill_ConfluenceAcrossCreationOrders(t *testing.T) {
	// Same formula, operands created in different orders. The worklist is
	// seeded in creation order, so this exercises genuinely different
	// processing orders; the fixpoint must agree.
	b1 := circuit.NewBuilder()
	x1 := b1.Input()
	c1 := b1.Constant(5)
	y1 := b1.Add(b1.Mul(x1, x1), c1)

	b2 := circuit.NewBuilder()
	c2 := b2.Constant(5)
	x2 := b2.Input()
	y2 := b2.Add(b2.Mul(x2, x2), c2)

	circuit.Fill(b1.Graph(), map[circuit.NodeID]uint32{x1.ID(): 6})
	circuit.Fill(b2.Graph(), map[circuit.NodeID]uint32{x2.ID(): 6})

	v1 := mustValue(t, y1)
	v2 := mustValue(t, y2)
	if v1 != v2 || v1 != 41 {
		t.Errorf("fixpoints disagree: %d vs %d, want 41", v1, v2)
	}
}

func TestFill_MultiOperandHintOrder(t *testing.T) {
	// Hint operands are passed in declared order.
	b := circuit.NewBuilder()
	hi := b.Constant(100)
	lo := b.Constant(4)
	quot := b.Hint([]*circuit.Node{hi, lo}, func(vals []uint32) uint32 {
		return vals[0] / vals[1]
	})

	circuit.Fill(b.Graph(), nil)

	if got := mustValue(t, quot); got != 25 {
		t.Errorf("100 / 4 = %d, want 25", got)
	}
}

func TestFill_UnknownInputIgnored(t *testing.T) {
	b := circuit.NewBuilder()
	x := b.Input()

	circuit.Fill(b.Graph(), map[circuit.NodeID]uint32{
		x.ID(): 1,
		9999:   2, // no such node; silently ignored
	})

	if got := mustValue(t, x); got != 1 {
		t.Errorf("x = %d, want 1", got)
	}
}
