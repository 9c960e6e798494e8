// Package api defines the stable wire schemas emitted by the CLI tools.
package api

// SampleV1 is the v1 JSON schema for one simulation replicate. Trees are
// serialized as Newick strings.
type SampleV1 struct {
	Replicate         int     `json:"replicate"`
	Seed              int64   `json:"seed"`
	FinalTime         float64 `json:"final_time"`
	Leaves            int     `json:"leaves"`
	FullSpeciesLeaves int     `json:"full_species_leaves"`
	ProtractedTree    string  `json:"protracted_tree,omitempty"`
	PrunedTree        string  `json:"pruned_tree,omitempty"`
}
