package output

import (
	"fmt"
	"io"

	"protsim/internal/pipeline"
)

const textHeader = "replicate\tseed\tfinal_time\tleaves\tfull_species_leaves"

// WriteTextHeader prints the TSV header line.
func WriteTextHeader(w io.Writer) error {
	_, err := fmt.Fprintln(w, textHeader)
	return err
}

// WriteTextRow prints one summary line per replicate.
func WriteTextRow(w io.Writer, r pipeline.Result) error {
	s := Summarize(r)
	_, err := fmt.Fprintf(w, "%d\t%d\t%.6g\t%d\t%d\n",
		s.Replicate, s.Seed, s.FinalTime, s.Leaves, s.FullSpeciesLeaves)
	return err
}
