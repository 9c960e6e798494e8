package common

import (
	"testing"

	"protsim/internal/pipeline"
)

func TestSortSamplesByReplicate(t *testing.T) {
	rs := []pipeline.Result{{Replicate: 3}, {Replicate: 1}, {Replicate: 2}}
	SortSamples(rs)
	for i, r := range rs {
		if r.Replicate != i+1 {
			t.Fatalf("position %d has replicate %d", i, r.Replicate)
		}
	}
}
