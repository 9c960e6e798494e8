package common

import (
	"sort"

	"protsim/internal/pipeline"
)

// LessSample orders results by replicate number so parallel runs emit
// deterministic output when sorting is requested.
func LessSample(a, b pipeline.Result) bool {
	return a.Replicate < b.Replicate
}

// SortSamples sorts in place.
func SortSamples(rs []pipeline.Result) {
	sort.Slice(rs, func(i, j int) bool { return LessSample(rs[i], rs[j]) })
}
