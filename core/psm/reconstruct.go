package psm

import (
	"container/heap"
	"math"

	"protsim-core/phylo"
)

// lineageQueue is a max-first priority queue keyed on speciation
// initiation time. Because a parent's initiation time is never later than
// its child's, every surviving descendant of a lineage comes off the
// queue before the lineage itself.
type lineageQueue struct {
	items  []*Lineage
	member map[*Lineage]bool
}

func newLineageQueue() *lineageQueue {
	return &lineageQueue{member: make(map[*Lineage]bool)}
}

func (q *lineageQueue) Len() int { return len(q.items) }
func (q *lineageQueue) Less(i, j int) bool {
	return q.items[i].SpeciationInitiationTime > q.items[j].SpeciationInitiationTime
}
func (q *lineageQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *lineageQueue) Push(x any)    { q.items = append(q.items, x.(*Lineage)) }
func (q *lineageQueue) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items = q.items[:n-1]
	return it
}

func (q *lineageQueue) push(l *Lineage) {
	if q.member[l] {
		return
	}
	q.member[l] = true
	heap.Push(q, l)
}

func (q *lineageQueue) pop() *Lineage {
	l := heap.Pop(q).(*Lineage)
	delete(q.member, l)
	return l
}

// assemblePrunedTree reconstructs the minimal tree of full-species
// branching points from the lineages still active at termination, without
// walking the full lineage graph. Lineages are processed most recent
// first; non-full lineages are discarded, full lineages are linked under
// their parent, and newly discovered parents join the working set.
func assemblePrunedTree(s *simState, taxonNamespace any) (*phylo.Tree, error) {
	q := newLineageQueue()
	for _, l := range s.fullSpecies {
		q.push(l)
	}
	for _, l := range s.incipientSpecies {
		q.push(l)
	}

	branchingPoints := make(map[*Lineage]*phylo.Node)
	var rootLineage *Lineage
	for q.Len() > 0 {
		lineage := q.pop()
		if lineage.Parent == nil {
			rootLineage = lineage
			break
		}
		if !lineage.IsFullSpecies {
			continue
		}
		nd := requirePrunedNode(branchingPoints, lineage)
		// A surviving full species retroactively promotes its ancestor:
		// the parent is treated as full once linked. Documented model
		// behavior; changing it would change the topology.
		lineage.Parent.IsFullSpecies = true
		parentNode := requirePrunedNode(branchingPoints, lineage.Parent)
		parentNode.AddChild(nd)
		q.push(lineage.Parent)
	}

	var seed *phylo.Node
	for _, nd := range branchingPoints {
		if nd.Parent() == nil {
			seed = nd
			break
		}
	}
	if seed == nil {
		// Degenerate but legal: a lone full-species root with no full
		// descendants yields a single-node tree.
		if rootLineage != nil && rootLineage.IsFullSpecies {
			seed = requirePrunedNode(branchingPoints, rootLineage)
		} else {
			return nil, ErrReconstruction
		}
	}

	pruned := phylo.NewTree(seed)
	pruned.TaxonNamespace = taxonNamespace

	// Leaves sit at the present; an internal node's age is the elapsed
	// time since its earliest child lineage split off.
	for _, nd := range pruned.PostorderNodes() {
		if nd.IsLeaf() {
			nd.SetAge(0)
			continue
		}
		earliest := math.Inf(1)
		for _, ch := range nd.Children() {
			if t := s.lineageByIndex(ch.LineageRef).SpeciationInitiationTime; t < earliest {
				earliest = t
			}
		}
		nd.SetAge(s.now - earliest)
	}
	pruned.SetEdgeLengthsFromNodeAges()
	pruned.SuppressUnifurcations()
	return pruned, nil
}

func requirePrunedNode(branchingPoints map[*Lineage]*phylo.Node, l *Lineage) *phylo.Node {
	if nd, ok := branchingPoints[l]; ok {
		return nd
	}
	nd := phylo.NewNode(l.Label())
	nd.LineageRef = l.Index()
	nd.Annotate("lineage_index", l.Index())
	nd.Annotate("lineage_label", l.Label())
	branchingPoints[l] = nd
	return nd
}
