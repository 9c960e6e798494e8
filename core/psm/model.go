// Package psm implements the Protracted Speciation Model: a
// continuous-time multi-type birth–death process over full and incipient
// species lineages. One sample yields two linked trees: the protracted
// speciation tree with every lineage, and a pruned tree restricted to
// full-species branching points.
package psm

import (
	"errors"
	"fmt"
	"math"
	"time"

	"protsim-core/phylo"
	"protsim-core/randvar"
)

// Config holds the five rate parameters of the process and the random
// source driving it. All rates must be non-negative.
type Config struct {
	FullSpeciesBirthRate           float64
	FullSpeciesExtinctionRate      float64
	IncipientSpeciesBirthRate      float64
	IncipientSpeciesConversionRate float64
	IncipientSpeciesExtinctionRate float64

	// Rand supplies waiting times and event selection. Callers wanting
	// reproducible runs pass a seeded source; nil gets a time-seeded
	// one. A source must not be shared across concurrent runs.
	Rand randvar.Source
}

func (c Config) validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"full-species birth rate", c.FullSpeciesBirthRate},
		{"full-species extinction rate", c.FullSpeciesExtinctionRate},
		{"incipient-species birth rate", c.IncipientSpeciesBirthRate},
		{"incipient-species conversion rate", c.IncipientSpeciesConversionRate},
		{"incipient-species extinction rate", c.IncipientSpeciesExtinctionRate},
	}
	for _, r := range rates {
		if r.v < 0 || math.IsNaN(r.v) {
			return fmt.Errorf("psm: %s must be >= 0, got %v", r.name, r.v)
		}
	}
	return nil
}

// DefaultMaxRetries bounds the total-extinction restarts when
// SampleOptions.MaxRetries is left zero.
const DefaultMaxRetries = 1000

// SampleOptions configures one call to GenerateSample. The zero value
// sets no termination limit and runs until total extinction; callers
// should configure at least one of MaxTime, MaxFullSpeciesLeaves or
// MaxProtractedLeaves.
type SampleOptions struct {
	// MaxTime stops the run once the simulated clock reaches it; active
	// edges are extended to exactly reach the limit. 0 disables.
	MaxTime float64
	// MaxFullSpeciesLeaves stops the run once the pruned tree has this
	// many leaves. The check reassembles the pruned tree on every event
	// iteration, which is expensive; callers opt in. 0 disables.
	MaxFullSpeciesLeaves int
	// MaxProtractedLeaves stops the run once the active lineage count
	// (full + incipient) reaches it. 0 disables.
	MaxProtractedLeaves int
	// InitialSpeciesIncipient starts the founding lineage as an
	// incipient rather than a full species.
	InitialSpeciesIncipient bool
	// DisableRetry surfaces total extinction immediately instead of
	// restarting the run.
	DisableRetry bool
	// MaxRetries bounds restarts on total extinction: 0 means
	// DefaultMaxRetries, negative means unbounded.
	MaxRetries int
	// TaxonNamespace is carried through to both produced trees
	// untouched.
	TaxonNamespace any
}

func (o SampleOptions) validate() error {
	if o.MaxTime < 0 || math.IsNaN(o.MaxTime) {
		return fmt.Errorf("psm: max time must be >= 0, got %v", o.MaxTime)
	}
	if o.MaxFullSpeciesLeaves < 0 {
		return fmt.Errorf("psm: max full-species leaves must be >= 0, got %d", o.MaxFullSpeciesLeaves)
	}
	if o.MaxProtractedLeaves < 0 {
		return fmt.Errorf("psm: max protracted leaves must be >= 0, got %d", o.MaxProtractedLeaves)
	}
	return nil
}

// Model generates sample paths of the protracted speciation process.
type Model struct {
	cfg Config
}

// New validates cfg and returns a Model.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Rand == nil {
		cfg.Rand = randvar.New(time.Now().UnixNano())
	}
	return &Model{cfg: cfg}, nil
}

// GenerateSample draws one sample path, returning the protracted
// speciation tree (every lineage, full and incipient) and the pruned
// tree (full-species branching points only). Runs ending in total
// extinction are transparently restarted per opts; reconstruction
// failures are surfaced immediately and never retried.
func (m *Model) GenerateSample(opts SampleOptions) (*phylo.Tree, *phylo.Tree, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	attempts := 0
	for {
		attempts++
		psmTree, prunedTree, err := m.run(opts)
		if err == nil {
			return psmTree, prunedTree, nil
		}
		if !errors.Is(err, ErrTotalExtinction) {
			return nil, nil, err
		}
		if opts.DisableRetry || (maxRetries > 0 && attempts > maxRetries) {
			return nil, nil, &TotalExtinctionError{Attempts: attempts}
		}
	}
}

// run executes a single attempt over fresh state.
func (m *Model) run(opts SampleOptions) (*phylo.Tree, *phylo.Tree, error) {
	s := &simState{state: stateRunning}
	founder := s.newLineage(nil, !opts.InitialSpeciesIncipient)
	s.tree = phylo.NewTree(s.newNode(founder))
	s.tree.TaxonNamespace = opts.TaxonNamespace

	var prunedTree *phylo.Tree

	for s.state == stateRunning {
		// The pruned-leaf limit needs the pruned tree materialized on
		// every iteration; reconstruction failures here just mean the
		// limit cannot be met yet.
		if opts.MaxFullSpeciesLeaves > 0 {
			pt, err := assemblePrunedTree(s, opts.TaxonNamespace)
			if err == nil && len(pt.LeafNodes()) >= opts.MaxFullSpeciesLeaves {
				prunedTree = pt
				s.state = stateLeafLimitReached
				break
			}
			if err != nil && !errors.Is(err, ErrReconstruction) {
				s.state = stateFailed
				return nil, nil, err
			}
		}
		if opts.MaxProtractedLeaves > 0 && s.activeCount() >= opts.MaxProtractedLeaves {
			s.state = stateLeafLimitReached
			break
		}

		nFull := float64(len(s.fullSpecies))
		nIncipient := float64(len(s.incipientSpecies))
		rates := []float64{
			m.cfg.FullSpeciesBirthRate * nFull,
			m.cfg.FullSpeciesExtinctionRate * nFull,
			m.cfg.IncipientSpeciesBirthRate * nIncipient,
			m.cfg.IncipientSpeciesConversionRate * nIncipient,
			m.cfg.IncipientSpeciesExtinctionRate * nIncipient,
		}
		total := 0.0
		for _, r := range rates {
			total += r
		}
		if total <= 0 {
			// Stalled process: with non-negative rates this means no
			// event can ever fire again. Terminal.
			s.state = stateTotalExtinction
			return nil, nil, ErrTotalExtinction
		}

		wait := randvar.Exponential(m.cfg.Rand, total)
		if opts.MaxTime > 0 && s.now+wait > opts.MaxTime {
			s.extendActiveEdges(opts.MaxTime - s.now)
			s.now = opts.MaxTime
			s.state = stateTimeLimitReached
			break
		}
		s.now += wait
		s.extendActiveEdges(wait)

		ev := eventKind(randvar.WeightedIndex(m.cfg.Rand, rates))
		if err := s.applyEvent(m.cfg.Rand, ev); err != nil {
			if errors.Is(err, ErrTotalExtinction) {
				s.state = stateTotalExtinction
			} else {
				s.state = stateFailed
			}
			return nil, nil, err
		}
		if s.activeCount() == 0 {
			s.state = stateTotalExtinction
			return nil, nil, ErrTotalExtinction
		}
	}

	if prunedTree == nil {
		pt, err := assemblePrunedTree(s, opts.TaxonNamespace)
		if err != nil {
			s.state = stateFailed
			return nil, nil, err
		}
		prunedTree = pt
	}
	postprocess(s, s.tree, prunedTree)
	s.state = stateSucceeded
	return s.tree, prunedTree, nil
}
