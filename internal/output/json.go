package output

import (
	"io"

	"protsim/internal/jsonutil"
	"protsim/internal/pipeline"
	"protsim/pkg/api"
)

// ToAPISample converts a pipeline result into the stable v1 wire shape.
// Tree strings are included according to the trees selector.
func ToAPISample(r pipeline.Result, trees string) api.SampleV1 {
	s := Summarize(r)
	out := api.SampleV1{
		Replicate:         s.Replicate,
		Seed:              s.Seed,
		FinalTime:         s.FinalTime,
		Leaves:            s.Leaves,
		FullSpeciesLeaves: s.FullSpeciesLeaves,
	}
	if trees == TreesBoth || trees == TreesProtracted {
		out.ProtractedTree = Newick(r.Protracted)
	}
	if trees == TreesBoth || trees == TreesPruned {
		out.PrunedTree = Newick(r.Pruned)
	}
	return out
}

// WriteJSON writes the full sample slice as an indented JSON array.
func WriteJSON(w io.Writer, samples []api.SampleV1) error {
	return jsonutil.EncodePretty(w, samples)
}
