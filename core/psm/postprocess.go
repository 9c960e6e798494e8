package psm

import "protsim-core/phylo"

// postprocess links each internal pruned-tree node back to the node on
// the protracted tree that represents the lineage's true speciation
// moment: the oldest (maximum-age) entry in the lineage's node history.
// That node is flagged as a full-speciation event. Leaves are left
// unmarked; their speciation event is their originating birth.
func postprocess(s *simState, psmTree, prunedTree *phylo.Tree) {
	psmTree.CalcNodeAges()
	for _, nd := range prunedTree.PreorderNodes() {
		if nd.IsLeaf() {
			continue
		}
		lineage := s.lineageByIndex(nd.LineageRef)
		history := lineage.NodeHistory()
		best := history[0]
		for _, cand := range history {
			ca, cok := cand.Age()
			if !cok {
				// Pruned off the live tree; no age was assigned.
				continue
			}
			if ba, bok := best.Age(); !bok || ca > ba {
				best = cand
			}
		}
		best.SpeciationEvent = true
		nd.Source = best
	}
}
