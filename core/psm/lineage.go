package psm

import (
	"fmt"
	"math"

	"protsim-core/phylo"
)

// Lineage is one lineage of the protracted speciation process: a full or
// incipient species tracked from its origin (the split from its parent)
// until extinction or the end of the run. Lineages are never deleted;
// extinct and converted lineages stay in the run's registry.
type Lineage struct {
	// IsFullSpecies flips incipient→full at most once and never back.
	IsFullSpecies bool
	// Parent is nil only for the founding lineage. A parent's
	// initiation time is never later than its child's.
	Parent *Lineage
	// SpeciationInitiationTime is the clock time the lineage was
	// created. Immutable.
	SpeciationInitiationTime float64
	// SpeciationCompletionTime is NaN until the lineage converts to a
	// full species.
	SpeciationCompletionTime float64
	// ExtinctionTime is NaN until the lineage dies.
	ExtinctionTime float64

	index   int
	label   string
	history []*phylo.Node
}

func newLineage(index int, parent *Lineage, initiation float64, isFull bool) *Lineage {
	return &Lineage{
		IsFullSpecies:            isFull,
		Parent:                   parent,
		SpeciationInitiationTime: initiation,
		SpeciationCompletionTime: math.NaN(),
		ExtinctionTime:           math.NaN(),
		index:                    index,
		label:                    fmt.Sprintf("L%d", index),
	}
}

// Index is the lineage's identity: a monotonically increasing integer
// unique within one simulation run, starting at 1.
func (l *Lineage) Index() int { return l.index }

func (l *Lineage) Label() string { return l.label }

// Node is the lineage's current node on the protracted speciation tree.
func (l *Lineage) Node() *phylo.Node { return l.history[len(l.history)-1] }

// NodeHistory lists every tree node the lineage has occupied, oldest
// first. Entries can be unreachable from the tree root after extinction
// pruning; they are retained for reconstruction and diagnostics.
func (l *Lineage) NodeHistory() []*phylo.Node { return l.history }

func (l *Lineage) pushNode(nd *phylo.Node) { l.history = append(l.history, nd) }
