package output

import "protsim/internal/pipeline"

// Tree selectors shared by the output formats.
const (
	TreesBoth       = "both"
	TreesProtracted = "protracted"
	TreesPruned     = "pruned"
)

// Summary condenses a replicate for tabular output and archiving.
type Summary struct {
	Replicate         int
	Seed              int64
	FinalTime         float64
	Leaves            int
	FullSpeciesLeaves int
}

// Summarize derives the per-replicate summary. The final simulation time
// is the protracted tree's root age plus the root's own edge length: the
// root edge carries the waiting time before the first event, which the
// age alone excludes.
func Summarize(r pipeline.Result) Summary {
	age, _ := r.Protracted.Root.Age()
	return Summary{
		Replicate:         r.Replicate,
		Seed:              r.Seed,
		FinalTime:         age + r.Protracted.Root.Length,
		Leaves:            len(r.Protracted.LeafNodes()),
		FullSpeciesLeaves: len(r.Pruned.LeafNodes()),
	}
}
