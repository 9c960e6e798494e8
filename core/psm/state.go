package psm

import (
	"fmt"

	"protsim-core/phylo"
)

// runState tracks one run attempt through its lifecycle.
type runState int

const (
	stateRunning runState = iota
	stateTimeLimitReached
	stateLeafLimitReached
	stateTotalExtinction
	stateSucceeded
	stateFailed
)

func (s runState) String() string {
	switch s {
	case stateRunning:
		return "running"
	case stateTimeLimitReached:
		return "time-limit-reached"
	case stateLeafLimitReached:
		return "leaf-limit-reached"
	case stateTotalExtinction:
		return "total-extinction"
	case stateSucceeded:
		return "succeeded"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("runState(%d)", int(s))
	}
}

// simState is the mutable state of a single run attempt: the clock, the
// active lineage sets, the registry of every lineage ever created, and
// the growing protracted speciation tree. A fresh simState is built for
// every retry; state is never reused across attempts.
type simState struct {
	state        runState
	now          float64
	lineageIndex int
	nodeIndex    int

	fullSpecies      []*Lineage
	incipientSpecies []*Lineage
	all              []*Lineage

	tree *phylo.Tree
}

func (s *simState) activeCount() int {
	return len(s.fullSpecies) + len(s.incipientSpecies)
}

// lineageByIndex resolves an arena index (phylo.Node.LineageRef) back to
// its lineage. Indices are assigned sequentially from 1.
func (s *simState) lineageByIndex(i int) *Lineage {
	return s.all[i-1]
}

func (s *simState) newLineage(parent *Lineage, isFull bool) *Lineage {
	s.lineageIndex++
	l := newLineage(s.lineageIndex, parent, s.now, isFull)
	s.all = append(s.all, l)
	if isFull {
		s.fullSpecies = append(s.fullSpecies, l)
	} else {
		s.incipientSpecies = append(s.incipientSpecies, l)
	}
	return l
}

// newNode creates a tree node owned by l and records it in the lineage's
// history. Node labels are "L<lineage>.n<node>" with a run-global node
// counter.
func (s *simState) newNode(l *Lineage) *phylo.Node {
	s.nodeIndex++
	nd := phylo.NewNode(fmt.Sprintf("%s.n%d", l.Label(), s.nodeIndex))
	nd.LineageRef = l.Index()
	nd.Annotate("lineage_index", l.Index())
	nd.Annotate("lineage_label", l.Label())
	l.pushNode(nd)
	return nd
}

// extendActiveEdges grows every active lineage's current edge by dt. This
// is the shared pre-step applied before an event handler runs.
func (s *simState) extendActiveEdges(dt float64) {
	for _, l := range s.fullSpecies {
		l.Node().Length += dt
	}
	for _, l := range s.incipientSpecies {
		l.Node().Length += dt
	}
}

// removeLineage takes l out of set, preserving order.
func removeLineage(set []*Lineage, l *Lineage) []*Lineage {
	for i, x := range set {
		if x == l {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
