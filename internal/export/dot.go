// Package export renders a circuit graph in Graphviz DOT format. It reads
// only what the graph exposes (ids, operation labels, operand edges, current
// values); the textual format is a convenience for visualization tooling and
// not part of the core's contract.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/gyaneshwarpardhi/circuitflow/internal/circuit"
)

// WriteDOT writes the graph as a DOT digraph: one labelled vertex per node,
// one edge per operand→node dependency. names may be nil; when a node has a
// name it is prefixed to the label. Output is deterministic (creation
// order).
func WriteDOT(w io.Writer, g *circuit.Graph, names map[circuit.NodeID]string) error {
	if _, err := fmt.Fprintln(w, "digraph circuit {"); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		label := n.Label()
		if name := names[n.ID()]; name != "" {
			label = name + ": " + label
		}
		if v, ok := n.Value(); ok {
			label = fmt.Sprintf("%s = %d", label, v)
		}
		if _, err := fmt.Fprintf(w, "  %s [label=%q]\n", n.ID(), label); err != nil {
			return err
		}
		if op := n.Op(); op != nil {
			for _, operand := range op.Operands {
				if _, err := fmt.Fprintf(w, "  %s -> %s;\n", operand, n.ID()); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// WriteDOTFile renders the graph into a file at path.
func WriteDOTFile(path string, g *circuit.Graph, names map[circuit.NodeID]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteDOT(f, g, names); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
