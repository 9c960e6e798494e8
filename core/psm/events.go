package psm

import (
	"fmt"

	"protsim-core/randvar"
)

// eventKind enumerates the five event types of the process, in the same
// order their rates are laid out for selection.
type eventKind int

const (
	eventFullSpeciesBirth eventKind = iota
	eventFullSpeciesExtinction
	eventIncipientSpeciesBirth
	eventIncipientSpeciesConversion
	eventIncipientSpeciesExtinction
	numEventKinds
)

func (e eventKind) String() string {
	switch e {
	case eventFullSpeciesBirth:
		return "full-species-birth"
	case eventFullSpeciesExtinction:
		return "full-species-extinction"
	case eventIncipientSpeciesBirth:
		return "incipient-species-birth"
	case eventIncipientSpeciesConversion:
		return "incipient-species-conversion"
	case eventIncipientSpeciesExtinction:
		return "incipient-species-extinction"
	default:
		return fmt.Sprintf("eventKind(%d)", int(e))
	}
}

// applyEvent dispatches one drawn event to its handler. The clock has
// already been advanced and active edges extended by the waiting time.
func (s *simState) applyEvent(src randvar.Source, ev eventKind) error {
	switch ev {
	case eventFullSpeciesBirth:
		s.processBirth(choose(src, s.fullSpecies))
	case eventFullSpeciesExtinction:
		return s.processExtinction(choose(src, s.fullSpecies), true)
	case eventIncipientSpeciesBirth:
		s.processBirth(choose(src, s.incipientSpecies))
	case eventIncipientSpeciesConversion:
		s.processConversion(choose(src, s.incipientSpecies))
	case eventIncipientSpeciesExtinction:
		return s.processExtinction(choose(src, s.incipientSpecies), false)
	default:
		return fmt.Errorf("psm: unexpected event kind %d", int(ev))
	}
	return nil
}

func choose(src randvar.Source, set []*Lineage) *Lineage {
	return set[src.Intn(len(set))]
}

// processBirth splits a new incipient lineage off parent. The parent
// carries on under a fresh child node so the split is a true bifurcation;
// both new edges start at zero length.
func (s *simState) processBirth(parent *Lineage) {
	parentNode := parent.Node()
	child := s.newLineage(parent, false)
	c1 := s.newNode(parent)
	c2 := s.newNode(child)
	parentNode.AddChild(c1)
	parentNode.AddChild(c2)
}

// processExtinction stamps l's extinction time, retires it from its
// active set and cuts its current subtree off the live tree. Emptying
// both active sets is a total-extinction failure, reported before the
// tree is touched.
func (s *simState) processExtinction(l *Lineage, fromFull bool) error {
	l.ExtinctionTime = s.now
	if fromFull {
		s.fullSpecies = removeLineage(s.fullSpecies, l)
	} else {
		s.incipientSpecies = removeLineage(s.incipientSpecies, l)
	}
	if s.activeCount() == 0 {
		return ErrTotalExtinction
	}
	return s.tree.PruneSubtree(l.Node())
}

// processConversion completes l's speciation, moving it incipient→full
// and stamping the completion time.
func (s *simState) processConversion(l *Lineage) {
	s.incipientSpecies = removeLineage(s.incipientSpecies, l)
	s.fullSpecies = append(s.fullSpecies, l)
	l.IsFullSpecies = true
	l.SpeciationCompletionTime = s.now
}
