package output

import (
	"fmt"
	"io"
	"strings"

	"protsim-core/phylo"
)

// Newick renders t as a Newick string with labels and branch lengths,
// terminated by a semicolon.
func Newick(t *phylo.Tree) string {
	var b strings.Builder
	writeNewickNode(&b, t.Root)
	b.WriteByte(';')
	return b.String()
}

func writeNewickNode(b *strings.Builder, nd *phylo.Node) {
	if !nd.IsLeaf() {
		b.WriteByte('(')
		for i, ch := range nd.Children() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNewickNode(b, ch)
		}
		b.WriteByte(')')
	}
	b.WriteString(nd.Label)
	fmt.Fprintf(b, ":%g", nd.Length)
}

// WriteNewick writes the selected trees of one replicate, one per line.
func WriteNewick(w io.Writer, protracted, pruned *phylo.Tree, trees string) error {
	if trees == TreesBoth || trees == TreesProtracted {
		if _, err := fmt.Fprintln(w, Newick(protracted)); err != nil {
			return err
		}
	}
	if trees == TreesBoth || trees == TreesPruned {
		if _, err := fmt.Fprintln(w, Newick(pruned)); err != nil {
			return err
		}
	}
	return nil
}
